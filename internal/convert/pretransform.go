// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
)

// Textual pre-transforms applied to the raw content before the converter
// runs. The artifact itself is never post-processed.

var (
	crlfRe       = regexp.MustCompile(`\r\n?`)
	blankRunRe   = regexp.MustCompile(`\n{4,}`)
	strikeRe     = regexp.MustCompile(`~~([^~\n](?:[^~\n]*[^~\n])?)~~`)
	parenMathRe  = regexp.MustCompile(`\\\((.+?)\\\)`)
	brackMathRe  = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	firstParaRe  = regexp.MustCompile(`(?i)<p(\s|>)`)
	blockStartRe = regexp.MustCompile(`^(\s{0,3}#{1,6}\s|\s*(?:[-*+]|\d+\.)\s|\s*>|\s*\||\s{0,3}(?:\x60{3,}|~{3,}))`)
)

// NormalizeMarkdown unifies line endings and collapses runaway blank-line
// runs that some chat UIs emit.
func NormalizeMarkdown(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	return blankRunRe.ReplaceAllString(text, "\n\n\n")
}

// ConvertLaTeXDelimiters rewrites \(..\) and \[..\] math delimiters to the
// dollar forms the converter's Markdown reader understands.
func ConvertLaTeXDelimiters(text string) string {
	text = parenMathRe.ReplaceAllString(text, `$$$1$$`)
	return brackMathRe.ReplaceAllString(text, "$$$$$1$$$$")
}

// RewriteStrikethrough turns ~~text~~ into <del>text</del> so strikethrough
// survives converters built without the GFM extension.
func RewriteStrikethrough(text string) string {
	return strikeRe.ReplaceAllString(text, "<del>$1</del>")
}

// SuppressFirstParagraphIndentMarkdown wraps the leading paragraph in a
// custom-style div so the reference template's first-paragraph style (no
// indent) applies. Headings, lists, tables, quotes, and fences are left
// alone; they are not indent-prone.
func SuppressFirstParagraphIndentMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start >= len(lines) || blockStartRe.MatchString(lines[start]) {
		return text
	}
	end := start
	for end < len(lines) && strings.TrimSpace(lines[end]) != "" {
		end++
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[:start], "\n"))
	if start > 0 {
		b.WriteString("\n")
	}
	b.WriteString("::: {custom-style=\"First Paragraph\"}\n")
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n:::\n")
	b.WriteString(strings.Join(lines[end:], "\n"))
	return b.String()
}

// SuppressFirstParagraphIndentHTML forces a zero text indent on the first
// paragraph element of an HTML fragment.
func SuppressFirstParagraphIndentHTML(html string) string {
	replaced := false
	return firstParaRe.ReplaceAllStringFunc(html, func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		tail := m[len(m)-1:]
		if tail == ">" {
			return `<p style="text-indent:0">`
		}
		return `<p style="text-indent:0"` + tail
	})
}
