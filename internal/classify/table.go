// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/pastemd/pkg/types"
)

// ErrNoTable is returned when a block does not parse to a table. Callers
// fall back to the document conversion path.
var ErrNoTable = errors.New("no markdown table in block")

var tableParser = goldmark.New(goldmark.WithExtensions(
	extension.Table,
	extension.Strikethrough,
))

// ParseTable parses a Markdown table block into rows of cells. The first
// row is the header. When keepFormat is set, inline bold/italic/strike/code
// spans and links become FormatRuns on each cell; otherwise cells carry
// flattened text only.
func ParseTable(block string, keepFormat bool) ([][]types.Cell, error) {
	src := []byte(block)
	doc := tableParser.Parser().Parse(text.NewReader(src))

	var table *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*east.Table); ok && entering {
			table = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if table == nil {
		return nil, ErrNoTable
	}

	var rows [][]types.Cell
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
		default:
			continue
		}
		var cells []types.Cell
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, buildCell(c, src, keepFormat))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, ErrNoTable
	}
	return rows, nil
}

// cellStyle is the inline formatting state active while flattening a cell.
type cellStyle struct {
	bold, italic, strike, code bool
	link                       string
}

func (s cellStyle) plain() bool {
	return !s.bold && !s.italic && !s.strike && !s.code && s.link == ""
}

type cellBuilder struct {
	text       strings.Builder
	runes      int
	runs       []types.FormatRun
	keepFormat bool
}

func buildCell(cell ast.Node, src []byte, keepFormat bool) types.Cell {
	b := &cellBuilder{keepFormat: keepFormat}
	for ch := cell.FirstChild(); ch != nil; ch = ch.NextSibling() {
		b.walk(ch, src, cellStyle{})
	}
	return types.Cell{Text: b.text.String(), Runs: b.runs}
}

func (b *cellBuilder) walk(n ast.Node, src []byte, st cellStyle) {
	switch v := n.(type) {
	case *ast.Text:
		b.append(string(v.Segment.Value(src)), st)
		if v.SoftLineBreak() || v.HardLineBreak() {
			b.append("\n", st)
		}
	case *ast.String:
		b.append(string(v.Value), st)
	case *ast.CodeSpan:
		st.code = true
		b.walkChildren(n, src, st)
	case *ast.Emphasis:
		if v.Level >= 2 {
			st.bold = true
		} else {
			st.italic = true
		}
		b.walkChildren(n, src, st)
	case *east.Strikethrough:
		st.strike = true
		b.walkChildren(n, src, st)
	case *ast.Link:
		st.link = string(v.Destination)
		b.walkChildren(n, src, st)
	case *ast.AutoLink:
		st.link = string(v.URL(src))
		b.append(string(v.Label(src)), st)
	case *ast.Image:
		// Images cannot land in a spreadsheet cell; keep the alt text.
		b.walkChildren(n, src, st)
	case *ast.RawHTML:
		if rawHTMLIsBreak(v, src) {
			b.append("\n", st)
		}
	default:
		b.walkChildren(n, src, st)
	}
}

func (b *cellBuilder) walkChildren(n ast.Node, src []byte, st cellStyle) {
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		b.walk(ch, src, st)
	}
}

func (b *cellBuilder) append(s string, st cellStyle) {
	if s == "" {
		return
	}
	start := b.runes
	b.text.WriteString(s)
	b.runes += utf8.RuneCountInString(s)

	if !b.keepFormat || st.plain() {
		return
	}
	// Extend the previous run when the style continues uninterrupted.
	if n := len(b.runs); n > 0 {
		last := &b.runs[n-1]
		if last.End == start &&
			last.Bold == st.bold && last.Italic == st.italic &&
			last.Strike == st.strike && last.Code == st.code && last.Link == st.link {
			last.End = b.runes
			return
		}
	}
	b.runs = append(b.runs, types.FormatRun{
		Start:  start,
		End:    b.runes,
		Bold:   st.bold,
		Italic: st.italic,
		Strike: st.strike,
		Code:   st.code,
		Link:   st.link,
	})
}

func rawHTMLIsBreak(v *ast.RawHTML, src []byte) bool {
	var raw strings.Builder
	for i := 0; i < v.Segments.Len(); i++ {
		seg := v.Segments.At(i)
		raw.Write(seg.Value(src))
	}
	tag := strings.ToLower(strings.TrimSpace(raw.String()))
	return strings.HasPrefix(tag, "<br")
}
