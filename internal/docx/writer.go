// Package docx writes minimal WordprocessingML (.docx) documents: plain
// paragraphs, explicit page breaks, and a document-wide default font
// applied to both the Latin and east-Asian font slots.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Extension is the required output file extension.
const Extension = ".docx"

type block struct {
	text      string
	pageBreak bool
}

// Document accumulates paragraphs and page breaks, then serializes the
// OOXML package on Save.
type Document struct {
	fontName   string
	fontSizePt int
	blocks     []block
}

// NewDocument creates an empty document with the given default font.
// The font name is applied to the ascii, hAnsi, and eastAsia slots
// alike so CJK output renders in the configured face.
func NewDocument(fontName string, fontSizePt int) *Document {
	return &Document{
		fontName:   fontName,
		fontSizePt: fontSizePt,
	}
}

// AppendParagraph adds one paragraph block. Empty text still produces a
// block, preserving pagination for blank pages. Newlines within the
// text become soft line breaks inside the paragraph.
func (d *Document) AppendParagraph(text string) {
	d.blocks = append(d.blocks, block{text: text})
}

// AppendPageBreak adds an explicit page break after the current block.
func (d *Document) AppendPageBreak() {
	d.blocks = append(d.blocks, block{pageBreak: true})
}

// Save writes the .docx package to path, appending the extension when
// the caller omitted it, and returns the absolute output path.
func (d *Document) Save(path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), Extension) {
		path += Extension
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", domain.IOError("failed to resolve output path", err)
	}

	out, err := os.Create(absPath)
	if err != nil {
		return "", domain.IOError(fmt.Sprintf("failed to create %s", absPath), err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", d.stylesXML()},
		{"word/document.xml", d.documentXML()},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return "", domain.IOError(fmt.Sprintf("failed to add %s", part.name), err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return "", domain.IOError(fmt.Sprintf("failed to write %s", part.name), err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", domain.IOError("failed to finalize document archive", err)
	}
	return absPath, nil
}

// documentXML serializes the body: one <w:p> per paragraph block and a
// dedicated <w:p> carrying the break for each page break block.
func (d *Document) documentXML() string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="` + nsW + `"><w:body>`)

	for _, b := range d.blocks {
		if b.pageBreak {
			sb.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
			continue
		}
		sb.WriteString(`<w:p>`)
		for i, line := range strings.Split(b.text, "\n") {
			if i > 0 {
				sb.WriteString(`<w:r><w:br/></w:r>`)
			}
			if line == "" {
				continue
			}
			sb.WriteString(`<w:r><w:t xml:space="preserve">`)
			sb.WriteString(escape(line))
			sb.WriteString(`</w:t></w:r>`)
		}
		sb.WriteString(`</w:p>`)
	}

	sb.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

// stylesXML sets the document defaults: font in every slot, size in
// half-points.
func (d *Document) stylesXML() string {
	font := escape(d.fontName)
	halfPoints := d.fontSizePt * 2
	return xml.Header + fmt.Sprintf(
		`<w:styles xmlns:w="%s">`+
			`<w:docDefaults><w:rPrDefault><w:rPr>`+
			`<w:rFonts w:ascii="%s" w:eastAsia="%s" w:hAnsi="%s" w:cs="%s"/>`+
			`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`+
			`</w:rPr></w:rPrDefault></w:docDefaults>`+
			`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`+
			`</w:styles>`,
		nsW, font, font, font, font, halfPoints, halfPoints)
}

const contentTypesXML = xml.Header +
	`<Types xmlns="` + nsCT + `">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const relsXML = xml.Header +
	`<Relationships xmlns="` + nsRel + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="` + nsRel + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// escape XML-escapes text content.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
