// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMarkdown(t *testing.T) {
	assert.Equal(t, "a\nb\nc", NormalizeMarkdown("a\r\nb\rc"))
	assert.Equal(t, "a\n\n\nb", NormalizeMarkdown("a\n\n\n\n\n\nb"))
}

func TestConvertLaTeXDelimiters(t *testing.T) {
	assert.Equal(t, "inline $x+y$ math", ConvertLaTeXDelimiters(`inline \(x+y\) math`))
	assert.Equal(t, "block $$E=mc^2$$ math", ConvertLaTeXDelimiters(`block \[E=mc^2\] math`))
	assert.Equal(t, "$$a\nb$$", ConvertLaTeXDelimiters("\\[a\nb\\]"))
	assert.Equal(t, "already $x$", ConvertLaTeXDelimiters("already $x$"))
}

func TestRewriteStrikethrough(t *testing.T) {
	assert.Equal(t, "a <del>gone</del> b", RewriteStrikethrough("a ~~gone~~ b"))
	assert.Equal(t, "<del>x</del>", RewriteStrikethrough("~~x~~"))
	assert.Equal(t, "not ~~ broken", RewriteStrikethrough("not ~~ broken"))
}

func TestSuppressFirstParagraphIndentMarkdown_WrapsLeadingParagraph(t *testing.T) {
	got := SuppressFirstParagraphIndentMarkdown("First paragraph here.\n\nSecond one.")
	assert.Equal(t,
		"::: {custom-style=\"First Paragraph\"}\nFirst paragraph here.\n:::\n\nSecond one.",
		got)
}

func TestSuppressFirstParagraphIndentMarkdown_SkipsHeadings(t *testing.T) {
	text := "# Title\n\nBody."
	assert.Equal(t, text, SuppressFirstParagraphIndentMarkdown(text))
}

func TestSuppressFirstParagraphIndentMarkdown_SkipsLists(t *testing.T) {
	text := "- one\n- two"
	assert.Equal(t, text, SuppressFirstParagraphIndentMarkdown(text))
}

func TestSuppressFirstParagraphIndentMarkdown_SkipsTables(t *testing.T) {
	text := "| a |\n| --- |\n| 1 |"
	assert.Equal(t, text, SuppressFirstParagraphIndentMarkdown(text))
}

func TestSuppressFirstParagraphIndentHTML(t *testing.T) {
	got := SuppressFirstParagraphIndentHTML("<p>one</p><p>two</p>")
	assert.Equal(t, `<p style="text-indent:0">one</p><p>two</p>`, got)

	got = SuppressFirstParagraphIndentHTML(`<p class="x">one</p>`)
	assert.Equal(t, `<p style="text-indent:0" class="x">one</p>`, got)

	assert.Equal(t, "<div>no paragraphs</div>", SuppressFirstParagraphIndentHTML("<div>no paragraphs</div>"))
}
