// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Run one paste cycle and exit",
	Long: `Paste captures the clipboard, classifies it, converts it, and inserts
the result into the focused application, then exits. This is the
command a hotkey manager binds to.`,
	RunE: runPaste,
}

func runPaste(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if keep, _ := cmd.Flags().GetBool("keep-file"); keep {
		opts.KeepFile = true
	}

	a, err := buildApp(opts, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	outcome := a.machine.RunOnce(context.Background())
	if !outcome.Success {
		if outcome.Err != nil {
			return outcome.Err
		}
		return fmt.Errorf("paste failed: %s", outcome.Detail)
	}
	fmt.Fprintln(cmd.OutOrStdout(), outcome.Detail)
	return nil
}

func init() {
	pasteCmd.Flags().Bool("keep-file", false, "retain the converted document in the save directory")

	rootCmd.AddCommand(pasteCmd)
}
