// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pastemd CLI. pastemd converts
// clipboard Markdown and rich HTML into native office content and places
// it at the caret of the focused application.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pastemd/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pastemd CLI.
var rootCmd = &cobra.Command{
	Use:   "pastemd",
	Short: "Paste Markdown and rich HTML into office applications",
	Long: `pastemd watches the clipboard on demand: a trigger captures the current
clipboard content, classifies it (Markdown text, Markdown table, rich
HTML), converts it through an external pandoc-compatible converter, and
inserts the result at the caret of the focused Word, WPS, or Excel
window. When no office application is focused, a configurable fallback
opens, saves, or re-clips the converted file.

Run "pastemd run" for the long-lived agent, or bind your hotkey manager
to "pastemd paste" for one-shot operation.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pastemd.yaml or ~/.config/pastemd/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pastemd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pastemd"))
		}
	}

	viper.SetEnvPrefix("PASTEMD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadOptions layers the config file and environment over the defaults,
// expands path variables, and validates the result.
func loadOptions() (types.Options, error) {
	opts := types.DefaultOptions()
	if err := viper.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("parsing configuration: %w", err)
	}
	opts = opts.Expand()
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// newLogger builds the process logger. Debug level when --verbose is set.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
