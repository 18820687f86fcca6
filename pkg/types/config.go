// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// NoAppAction selects what happens when the foreground window is not a
// recognized office application.
type NoAppAction string

const (
	// ActionOpen saves the artifact and launches the default application on it.
	ActionOpen NoAppAction = "open"

	// ActionSave persists the artifact to the save directory only.
	ActionSave NoAppAction = "save"

	// ActionClipboard replaces the clipboard content with a reference to
	// the artifact file.
	ActionClipboard NoAppAction = "clipboard"

	// ActionNone discards the artifact and reports success with no action.
	ActionNone NoAppAction = "none"
)

// Options is the configuration snapshot one pipeline run operates on. It is
// captured once at run start and never mutated for the run's duration; a
// config reload swaps the snapshot seen by future runs only.
type Options struct {
	// Hotkey is the trigger binding, e.g. "ctrl+shift+b". Interpreted by
	// the hotkey collaborator, opaque to the core.
	Hotkey string `json:"hotkey" yaml:"hotkey" mapstructure:"hotkey"`

	// ConverterPath locates the external document converter binary.
	ConverterPath string `json:"converter_path" yaml:"converter_path" mapstructure:"converter_path"`

	// ReferenceDoc is an optional style-reference template passed to the
	// converter (--reference-doc). Empty disables it.
	ReferenceDoc string `json:"reference_doc,omitempty" yaml:"reference_doc,omitempty" mapstructure:"reference_doc"`

	// SaveDir is where retained artifacts are written. Environment
	// variables are expanded at load time.
	SaveDir string `json:"save_dir" yaml:"save_dir" mapstructure:"save_dir"`

	// TempDir overrides the directory for transient artifacts. Empty
	// means the system temp directory.
	TempDir string `json:"temp_dir,omitempty" yaml:"temp_dir,omitempty" mapstructure:"temp_dir"`

	// KeepFile retains the converted document in SaveDir after delivery.
	KeepFile bool `json:"keep_file" yaml:"keep_file" mapstructure:"keep_file"`

	// Notify enables outcome notifications.
	Notify bool `json:"notify" yaml:"notify" mapstructure:"notify"`

	// EnableExcel turns on Markdown-table detection and spreadsheet
	// delivery. When off, table text is treated as plain Markdown.
	EnableExcel bool `json:"enable_excel" yaml:"enable_excel" mapstructure:"enable_excel"`

	// ExcelKeepFormat preserves inline bold/italic/code spans per cell as
	// formatting runs instead of flattening to plain text.
	ExcelKeepFormat bool `json:"excel_keep_format" yaml:"excel_keep_format" mapstructure:"excel_keep_format"`

	// NoAppAction picks the fallback when no target application is in the
	// foreground: open, save, clipboard, or none.
	NoAppAction NoAppAction `json:"no_app_action" yaml:"no_app_action" mapstructure:"no_app_action"`

	// MDDisableFirstParaIndent suppresses the first-paragraph indent on
	// the Markdown document path (textual pre-transform).
	MDDisableFirstParaIndent bool `json:"md_disable_first_para_indent" yaml:"md_disable_first_para_indent" mapstructure:"md_disable_first_para_indent"`

	// HTMLDisableFirstParaIndent suppresses the first-paragraph indent on
	// the HTML document path.
	HTMLDisableFirstParaIndent bool `json:"html_disable_first_para_indent" yaml:"html_disable_first_para_indent" mapstructure:"html_disable_first_para_indent"`

	// StrikethroughToDel rewrites ~~text~~ to <del>text</del> before
	// conversion so converters without the strikethrough extension keep it.
	StrikethroughToDel bool `json:"strikethrough_to_del" yaml:"strikethrough_to_del" mapstructure:"strikethrough_to_del"`

	// MoveCaretToEnd repositions the caret after the inserted content.
	MoveCaretToEnd bool `json:"move_caret_to_end" yaml:"move_caret_to_end" mapstructure:"move_caret_to_end"`

	// KeepOriginalFormula keeps LaTeX math literal ($...$) instead of
	// letting the converter render it.
	KeepOriginalFormula bool `json:"keep_original_formula" yaml:"keep_original_formula" mapstructure:"keep_original_formula"`

	// RequestHeaders are passed to the converter for remote resource
	// fetches embedded in the content, in list order.
	RequestHeaders []string `json:"request_headers,omitempty" yaml:"request_headers,omitempty" mapstructure:"request_headers"`

	// Filters are converter filter paths applied in list order. A missing
	// filter file aborts the conversion.
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty" mapstructure:"filters"`

	// ConvertTimeout bounds one converter invocation. The subprocess is
	// killed on expiry.
	ConvertTimeout time.Duration `json:"convert_timeout" yaml:"convert_timeout" mapstructure:"convert_timeout"`

	// LaunchWait bounds the wait for an application launched by the
	// "open" no-app action to become ready.
	LaunchWait time.Duration `json:"launch_wait" yaml:"launch_wait" mapstructure:"launch_wait"`

	// JournalPath enables the SQLite run-history journal when non-empty.
	JournalPath string `json:"journal_path,omitempty" yaml:"journal_path,omitempty" mapstructure:"journal_path"`
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	home, _ := os.UserHomeDir()
	return Options{
		Hotkey:                     "ctrl+shift+b",
		ConverterPath:              "pandoc",
		SaveDir:                    filepath.Join(home, "Documents", "pastemd"),
		Notify:                     true,
		EnableExcel:                true,
		ExcelKeepFormat:            true,
		NoAppAction:                ActionOpen,
		MDDisableFirstParaIndent:   true,
		HTMLDisableFirstParaIndent: true,
		StrikethroughToDel:         true,
		MoveCaretToEnd:             true,
		ConvertTimeout:             60 * time.Second,
		LaunchWait:                 15 * time.Second,
	}
}

// Validate checks option values at load time. Invalid values block the
// dependent feature before any run starts; they are never discovered
// mid-pipeline.
func (o Options) Validate() error {
	switch o.NoAppAction {
	case ActionOpen, ActionSave, ActionClipboard, ActionNone:
	default:
		return Failuref(ReasonConfigInvalid, "unknown no_app_action %q (want open, save, clipboard, or none)", o.NoAppAction)
	}
	if o.ConverterPath == "" {
		return Failuref(ReasonConfigInvalid, "converter_path must not be empty")
	}
	if o.ConvertTimeout <= 0 {
		return Failuref(ReasonConfigInvalid, "convert_timeout must be positive, got %v", o.ConvertTimeout)
	}
	if o.LaunchWait <= 0 {
		return Failuref(ReasonConfigInvalid, "launch_wait must be positive, got %v", o.LaunchWait)
	}
	if o.SaveDir == "" && (o.KeepFile || o.NoAppAction == ActionSave || o.NoAppAction == ActionOpen) {
		return Failuref(ReasonConfigInvalid, "save_dir required when keep_file or no_app_action=%s", o.NoAppAction)
	}
	if o.ReferenceDoc != "" {
		if _, err := os.Stat(o.ReferenceDoc); err != nil {
			return Failure(ReasonConfigInvalid, fmt.Sprintf("reference_doc %s not readable", o.ReferenceDoc), err)
		}
	}
	return nil
}

// Expand resolves environment variables in path-valued options. Called once
// at load time so the persisted file keeps the unexpanded form.
func (o Options) Expand() Options {
	o.SaveDir = os.ExpandEnv(o.SaveDir)
	o.TempDir = os.ExpandEnv(o.TempDir)
	o.ReferenceDoc = os.ExpandEnv(o.ReferenceDoc)
	o.JournalPath = os.ExpandEnv(o.JournalPath)
	if len(o.Filters) > 0 {
		filters := make([]string, len(o.Filters))
		for i, f := range o.Filters {
			filters[i] = os.ExpandEnv(f)
		}
		o.Filters = filters
	}
	return o
}
