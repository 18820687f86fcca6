// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pastemd/internal/classify"
	"github.com/pdiddy/pastemd/internal/clipboard"
	"github.com/pdiddy/pastemd/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify content from stdin and print the detected kind",
	Long: `Classify reads content from standard input and prints the content kind
the pipeline would route it as: markdown, markdown-table, html, or none.
Use --html when the input is an HTML clipboard payload.`,
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	var snap types.ClipboardSnapshot
	if isHTML, _ := cmd.Flags().GetBool("html"); isHTML {
		snap.HTML = clipboard.Sanitize(string(data))
	} else {
		snap.PlainText = string(data)
	}

	kind := classify.Classify(snap, opts)
	fmt.Fprintln(cmd.OutOrStdout(), kind)

	if kind == types.KindMarkdownTable {
		if block, ok := classify.ExtractTable(snap.PlainText); ok {
			fmt.Fprintln(cmd.OutOrStdout(), block)
		}
	}
	if kind == types.KindMarkdownText && !classify.LooksLikeMarkdown(snap.PlainText) {
		fmt.Fprintln(cmd.OutOrStdout(), "note: no markdown syntax detected, converts as plain prose")
	}
	return nil
}

func init() {
	classifyCmd.Flags().Bool("html", false, "treat stdin as the HTML clipboard payload")

	rootCmd.AddCommand(classifyCmd)
}
