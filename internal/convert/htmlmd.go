// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var (
	htmlConvOnce sync.Once
	htmlConv     *converter.Converter
)

func htmlConverter() *converter.Converter {
	htmlConvOnce.Do(func() {
		htmlConv = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		)
	})
	return htmlConv
}

// HTMLToMarkdown converts a clipboard HTML fragment to Markdown. It backs
// the formula-preserving document path ($...$ stays literal text instead
// of being rendered) and table extraction from HTML when the target is a
// spreadsheet.
func HTMLToMarkdown(html string) (string, error) {
	md, err := htmlConverter().ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("html to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return "", fmt.Errorf("html to markdown: empty result")
	}
	return md, nil
}
