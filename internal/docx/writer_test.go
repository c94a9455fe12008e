package docx

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readPart(t *testing.T, docxPath, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(docxPath)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("%s not found in archive", name)
	return ""
}

func TestSaveAppendsExtension(t *testing.T) {
	dir := t.TempDir()

	doc := NewDocument("SimSun", 12)
	doc.AppendParagraph("hello")

	saved, err := doc.Save(filepath.Join(dir, "report"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(saved, "report.docx"))
	assert.True(t, filepath.IsAbs(saved))

	// Existing extension is kept regardless of case.
	doc2 := NewDocument("SimSun", 12)
	doc2.AppendParagraph("hello")
	saved2, err := doc2.Save(filepath.Join(dir, "upper.DOCX"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(saved2, "upper.DOCX"))
}

func TestPaginationBlocksAndBreaks(t *testing.T) {
	dir := t.TempDir()

	// Three pages, the middle one blank. Blank pages still get a block
	// so page numbering in the output matches the source.
	doc := NewDocument("SimSun", 12)
	doc.AppendParagraph("第一页。")
	doc.AppendPageBreak()
	doc.AppendParagraph("")
	doc.AppendPageBreak()
	doc.AppendParagraph("第三页。")

	saved, err := doc.Save(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)

	body := readPart(t, saved, "word/document.xml")
	assert.Equal(t, 2, strings.Count(body, `<w:br w:type="page"/>`))
	assert.Equal(t, 5, strings.Count(body, `<w:p>`))
	assert.Contains(t, body, `<w:p></w:p>`)
	assert.Contains(t, body, "第一页。")
	assert.Contains(t, body, "第三页。")
}

func TestParagraphNewlinesBecomeSoftBreaks(t *testing.T) {
	dir := t.TempDir()

	doc := NewDocument("SimSun", 12)
	doc.AppendParagraph("first\nsecond")

	saved, err := doc.Save(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)

	body := readPart(t, saved, "word/document.xml")
	assert.Equal(t, 1, strings.Count(body, `<w:r><w:br/></w:r>`))
	assert.Zero(t, strings.Count(body, `<w:br w:type="page"/>`))
	assert.Contains(t, body, "first")
	assert.Contains(t, body, "second")
}

func TestStylesCarryFontInAllSlots(t *testing.T) {
	dir := t.TempDir()

	doc := NewDocument("宋体", 14)
	doc.AppendParagraph("内容")

	saved, err := doc.Save(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)

	styles := readPart(t, saved, "word/styles.xml")
	assert.Contains(t, styles, `w:ascii="宋体"`)
	assert.Contains(t, styles, `w:hAnsi="宋体"`)
	assert.Contains(t, styles, `w:eastAsia="宋体"`)
	assert.Contains(t, styles, `w:cs="宋体"`)
	// Size is stored in half-points.
	assert.Contains(t, styles, `<w:sz w:val="28"/>`)
}

func TestTextIsXMLEscaped(t *testing.T) {
	dir := t.TempDir()

	doc := NewDocument("SimSun", 12)
	doc.AppendParagraph(`a < b & "c"`)

	saved, err := doc.Save(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)

	body := readPart(t, saved, "word/document.xml")
	assert.Contains(t, body, "a &lt; b &amp;")
	assert.NotContains(t, body, `a < b`)
}

func TestPackageHasRequiredParts(t *testing.T) {
	dir := t.TempDir()

	doc := NewDocument("SimSun", 12)
	doc.AppendParagraph("x")

	saved, err := doc.Save(filepath.Join(dir, "out.docx"))
	require.NoError(t, err)

	zr, err := zip.OpenReader(saved)
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/styles.xml",
	} {
		assert.True(t, names[want], "missing part %s", want)
	}
}
