// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides what kind of content a clipboard snapshot holds
// and extracts Markdown table blocks for spreadsheet delivery.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pastemd/pkg/types"
)

// separatorRe matches a Markdown table separator row: optional leading
// pipe, then dash groups (with optional alignment colons) joined by pipes.
var separatorRe = regexp.MustCompile(`^\s*\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)+\|?\s*$`)

// Classify inspects a snapshot and returns the content kind. First match
// wins:
//
//  1. HTML present: HTML rich text, unless the plain text carries a
//     Markdown table and Excel delivery is enabled. AI chat UIs put both a
//     Markdown and an HTML rendering of the same table on the clipboard,
//     and the Markdown one converts losslessly, so the table wins the tie.
//     HTML that is only a span-wrapped shell around the plain text falls
//     back to the Markdown path.
//  2. Plain text with a table block: Markdown table (Excel enabled only).
//  3. Any other plain text: Markdown document.
//  4. HTML only: HTML rich text.
//  5. Nothing usable: none.
func Classify(snap types.ClipboardSnapshot, opts types.Options) types.ContentKind {
	html := strings.TrimSpace(snap.HTML)
	text := strings.TrimSpace(snap.PlainText)

	_, hasTable := ExtractTable(snap.PlainText)

	if html != "" {
		if hasTable && opts.EnableExcel {
			return types.KindMarkdownTable
		}
		if !hasTable && text != "" && PlainFragment(html) {
			return types.KindMarkdownText
		}
		return types.KindHTMLRich
	}
	if text != "" {
		if hasTable && opts.EnableExcel {
			return types.KindMarkdownTable
		}
		return types.KindMarkdownText
	}
	return types.KindNone
}

// ExtractTable finds the first Markdown table block in text: two or more
// contiguous lines each containing an unescaped pipe, with the second line
// being a separator row. Surrounding prose is discarded; only the block is
// returned.
func ExtractTable(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i := 0; i+1 < len(lines); i++ {
		if !hasUnescapedPipe(lines[i]) {
			continue
		}
		sep := lines[i+1]
		if !hasUnescapedPipe(sep) || !separatorRe.MatchString(sep) {
			continue
		}
		end := i + 2
		for end < len(lines) && hasUnescapedPipe(lines[end]) {
			end++
		}
		return strings.Join(lines[i:end], "\n"), true
	}
	return "", false
}

func hasUnescapedPipe(line string) bool {
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			return true
		}
	}
	return false
}

var (
	fencedRe      = regexp.MustCompile("(?m)^\\s{0,3}(`{3,})[^\\n]*\\n[\\s\\S]*?\\n^\\s{0,3}`{3,}\\s*$")
	mathBlockRe   = regexp.MustCompile(`\$\$[\s\S]*?\$\$`)
	mathBracketRe = regexp.MustCompile(`\\\[[\s\S]*?\\\]`)
	mathParenRe   = regexp.MustCompile(`\\\([^\n]*?\\\)`)
	mathInlineRe  = regexp.MustCompile(`\$[^\n$]+\$`)

	markdownPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`),     // heading
		regexp.MustCompile(`\[.+?\]\(.+?\)`),            // link
		regexp.MustCompile(`(?m)^\s*[-*+]\s+`),          // unordered list
		regexp.MustCompile(`(?m)^\s*\d+\.\s+`),          // ordered list
		regexp.MustCompile(`(?m)^>\s+`),                 // blockquote
		regexp.MustCompile("`[^`]+`"),                   // inline code
		regexp.MustCompile(`!\[.*?\]\(.+?\)`),           // image
		regexp.MustCompile(`(\*\*|__).+?(\*\*|__)`),     // bold
	}
)

// LooksLikeMarkdown reports whether text contains Markdown structure:
// fenced code, LaTeX math, or common block/inline syntax.
func LooksLikeMarkdown(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if fencedRe.MatchString(text) {
		return true
	}
	if mathBlockRe.MatchString(text) || mathBracketRe.MatchString(text) || mathParenRe.MatchString(text) || mathInlineRe.MatchString(text) {
		return true
	}
	for _, p := range markdownPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
