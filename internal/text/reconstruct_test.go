package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairCJKSpacing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single gap",
			input: "人 设",
			want:  "人设",
		},
		{
			name:  "multiple spaces in one gap",
			input: "人   设",
			want:  "人设",
		},
		{
			name:  "chained gaps collapse fully",
			input: "一 二 三 四",
			want:  "一二三四",
		},
		{
			name:  "latin words keep their spaces",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "mixed text only repairs CJK pairs",
			input: "英文 word 中 文",
			want:  "英文 word 中文",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairCJKSpacing(tt.input))
		})
	}
}

func TestRepairCJKSpacingIdempotent(t *testing.T) {
	inputs := []string{
		"一 二 三",
		"人 设 计 划",
		"中文 and English 混 排",
		"已经修复的中文句子。",
	}
	for _, in := range inputs {
		once := RepairCJKSpacing(in)
		twice := RepairCJKSpacing(once)
		assert.Equal(t, once, twice, "repair must be idempotent for %q", in)
	}
}

func TestReconstructPageParagraphMerge(t *testing.T) {
	r := &Reconstructor{AutoFormat: true}

	// A line ending in sentence-terminal punctuation closes its
	// paragraph; a dangling line is merged into the next one.
	got := r.ReconstructPage("第一行\n第二行。\n第三行")
	want := "第一行 第二行。\n\n第三行"
	assert.Equal(t, want, got)
}

func TestReconstructPage(t *testing.T) {
	tests := []struct {
		name string
		r    Reconstructor
		in   string
		want string
	}{
		{
			name: "empty input yields empty placeholder",
			r:    Reconstructor{AutoFormat: true},
			in:   "",
			want: "",
		},
		{
			name: "whitespace-only input yields empty placeholder",
			r:    Reconstructor{AutoFormat: true},
			in:   "  \n\t \n ",
			want: "",
		},
		{
			name: "blank lines are discarded",
			r:    Reconstructor{AutoFormat: true},
			in:   "句子一。\n\n\n句子二。",
			want: "句子一。\n\n句子二。",
		},
		{
			name: "internal whitespace runs collapse",
			r:    Reconstructor{AutoFormat: true},
			in:   "word1   word2\tword3.",
			want: "word1 word2 word3.",
		},
		{
			name: "continuation joined with single space",
			r:    Reconstructor{AutoFormat: true},
			in:   "first fragment\nsecond fragment.",
			want: "first fragment second fragment.",
		},
		{
			name: "token removal strips every occurrence",
			r:    Reconstructor{AutoFormat: true, RemoveTokens: []string{"Header123"}},
			in:   "Header123 正文内容 Header123",
			want: "正文内容",
		},
		{
			name: "no-format removes tokens and trims, nothing else",
			r:    Reconstructor{AutoFormat: false, RemoveTokens: []string{"PAGE"}},
			in:   "PAGE 中 文 body\nsecond line",
			want: "中 文 body\nsecond line",
		},
		{
			name: "question mark and colon close paragraphs",
			r:    Reconstructor{AutoFormat: true},
			in:   "这是什么？\n答案如下：\n就是这个",
			want: "这是什么？\n\n答案如下：\n\n就是这个",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.ReconstructPage(tt.in))
		})
	}
}

func TestReconstructPageTokenRemovalNeverLeaks(t *testing.T) {
	r := &Reconstructor{AutoFormat: true, RemoveTokens: []string{"机密文件", "第1页"}}
	in := "机密文件\n正文第一句。\n第1页\n正文第二句。"
	out := r.ReconstructPage(in)
	assert.NotContains(t, out, "机密文件")
	assert.NotContains(t, out, "第1页")
	assert.True(t, strings.Contains(out, "正文第一句。"))
}
