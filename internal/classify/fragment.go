// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"strings"
)

// semanticTags are elements that carry real document structure. An HTML
// fragment containing any of these is worth sending through the HTML
// conversion path.
var semanticTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "ul": true, "ol": true, "li": true, "dl": true, "dt": true,
	"dd": true, "table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "th": true, "td": true, "col": true, "colgroup": true,
	"pre": true, "code": true, "blockquote": true, "figure": true,
	"figcaption": true, "math": true, "section": true, "article": true,
	"header": true, "footer": true, "aside": true, "nav": true, "hr": true,
}

// wrapperTags are the inline elements copy buttons wrap plain text in.
var wrapperTags = map[string]bool{
	"span": true, "font": true, "strong": true, "em": true, "b": true,
	"i": true, "u": true, "sub": true, "sup": true, "s": true, "del": true,
	"mark": true, "a": true, "br": true,
}

// envelopeTags never count either way.
var envelopeTags = map[string]bool{
	"html": true, "head": true, "body": true, "meta": true, "style": true,
	"title": true, "link": true,
}

var (
	tagRe     = regexp.MustCompile(`(?i)<\s*/?\s*([a-z][a-z0-9]*)`)
	stripRe   = regexp.MustCompile(`(?s)<[^>]*>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// PlainFragment reports whether an HTML fragment is just a shell around
// plain text or Markdown source. Copy buttons often produce span-wrapped
// text; pushing that through the HTML conversion path pastes Markdown
// syntax characters verbatim into the document, so callers fall back to
// the plain-text path instead.
func PlainFragment(html string) bool {
	if strings.TrimSpace(html) == "" {
		return true
	}
	html = commentRe.ReplaceAllString(html, "")

	semantic := 0
	onlyWrappers := true
	for _, m := range tagRe.FindAllStringSubmatch(html, -1) {
		name := strings.ToLower(m[1])
		if envelopeTags[name] {
			continue
		}
		if semanticTags[name] {
			semantic++
		}
		if !wrapperTags[name] {
			onlyWrappers = false
		}
	}

	if semantic > 0 {
		return false
	}
	if onlyWrappers {
		return true
	}

	text := strings.TrimSpace(stripRe.ReplaceAllString(html, ""))
	if text == "" {
		return true
	}
	return LooksLikeMarkdown(text)
}
