// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pastemd/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent paste runs from the journal",
	Long: `History lists recent paste runs recorded in the journal database.
Requires journal_path to be set in the configuration.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if opts.JournalPath == "" {
		return fmt.Errorf("journal disabled: set journal_path in the configuration")
	}

	j, err := journal.Open(opts.JournalPath, logger)
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := j.Recent(limit)
	if err != nil {
		return err
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		out, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-20s  %-14s  %-8s  %-7s  %s\n",
		"When", "Kind", "Target", "Result", "Detail")
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = e.Reason
			if result == "" {
				result = "failed"
			}
		}
		detail := e.Detail
		if len(detail) > 40 {
			detail = detail[:37] + "..."
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s  %-14s  %-8s  %-7s  %s\n",
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"), e.Kind, e.Target, result, detail)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(historyCmd)
}
