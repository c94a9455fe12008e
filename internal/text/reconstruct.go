// Package text turns raw recognized page text into paragraph-structured
// prose: it strips configured header/footer tokens, removes the spurious
// spaces OCR engines insert between CJK glyphs, and merges fragmented
// lines into paragraphs split on sentence-terminal punctuation.
package text

import (
	"regexp"
	"strings"
)

// cjkGap matches two CJK Unified Ideographs separated by whitespace.
var cjkGap = regexp.MustCompile(`([\x{4e00}-\x{9fa5}])\s+([\x{4e00}-\x{9fa5}])`)

// innerSpace matches runs of whitespace within a line.
var innerSpace = regexp.MustCompile(`\s+`)

// terminals are the sentence-ending marks that close a paragraph buffer.
// Both full-width and half-width variants count.
var terminals = []string{
	"。", ".", "！", "!", "？", "?", "：", ":", "；", ";", "…", "”", `"`, "）", ")",
}

// Reconstructor normalizes one page's raw text into paragraphs.
type Reconstructor struct {
	// RemoveTokens are literal strings deleted from the raw text before
	// any other processing (header/footer noise in text-layer mode).
	RemoveTokens []string
	// AutoFormat enables line merging; when false, ReconstructPage only
	// removes tokens and trims.
	AutoFormat bool
}

// RepairCJKSpacing deletes the whitespace between adjacent CJK glyphs.
// The substitution runs to a fixed point so that runs like "一 二 三"
// collapse fully; the transform is idempotent.
func RepairCJKSpacing(s string) string {
	for {
		out := cjkGap.ReplaceAllString(s, "$1$2")
		if out == s {
			return out
		}
		s = out
	}
}

// endsWithTerminal reports whether s ends in a sentence-terminal mark.
func endsWithTerminal(s string) bool {
	for _, t := range terminals {
		if strings.HasSuffix(s, t) {
			return true
		}
	}
	return false
}

// ReconstructPage produces the cleaned paragraph text for one page.
// Empty or whitespace-only input yields "", which keeps the page as an
// empty placeholder rather than dropping it.
func (r *Reconstructor) ReconstructPage(raw string) string {
	for _, token := range r.RemoveTokens {
		if token != "" {
			raw = strings.ReplaceAll(raw, token, "")
		}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	if !r.AutoFormat {
		return text
	}

	var merged []string
	var buf string

	// Spacing repair runs per line so the line boundaries the merge rule
	// depends on are still intact when it sees them.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = RepairCJKSpacing(line)
		line = innerSpace.ReplaceAllString(line, " ")

		if buf == "" {
			buf = line
			continue
		}

		// A buffer ending in sentence-terminal punctuation is a finished
		// paragraph; otherwise the line continues the sentence.
		if endsWithTerminal(buf) {
			merged = append(merged, buf)
			buf = line
		} else {
			buf = buf + " " + line
		}
	}

	if buf != "" {
		merged = append(merged, buf)
	}

	return strings.Join(merged, "\n\n")
}
