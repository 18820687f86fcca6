// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across the paste pipeline stages.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ContentKind classifies what the clipboard holds.
type ContentKind string

const (
	KindMarkdownText  ContentKind = "markdown"
	KindMarkdownTable ContentKind = "markdown-table"
	KindHTMLRich      ContentKind = "html"
	KindNone          ContentKind = "none"
)

// TargetApp identifies the application that should receive the converted
// content. WPS spreadsheet windows resolve to TargetExcel; the word
// processor keeps its own variant because document insertion differs.
type TargetApp string

const (
	TargetWord    TargetApp = "word"
	TargetWPS     TargetApp = "wps"
	TargetExcel   TargetApp = "excel"
	TargetUnknown TargetApp = "unknown"
)

// ClipboardSnapshot is the clipboard payload captured at trigger time.
// It is created fresh per pipeline run and never mutated.
type ClipboardSnapshot struct {
	// PlainText is the CF_UNICODETEXT / public.utf8-plain-text payload,
	// empty when the clipboard carries no text.
	PlainText string

	// HTML is the rich-text payload (CF_HTML fragment or text/html),
	// already stripped of clipboard envelope headers. Empty when absent.
	HTML string

	// CapturedAt is the capture timestamp.
	CapturedAt time.Time
}

// Empty reports whether the snapshot carries no usable payload.
func (s ClipboardSnapshot) Empty() bool {
	return strings.TrimSpace(s.PlainText) == "" && strings.TrimSpace(s.HTML) == ""
}

// TargetWindow is the resolved foreground window at trigger time. The
// Handle is an opaque platform value passed back to the delivery
// capabilities; the core never inspects it.
type TargetWindow struct {
	App         TargetApp
	ProcessName string
	WindowTitle string
	Handle      any
}

// ConversionRequest carries one pipeline run's input into the conversion
// stage. Options is the immutable configuration snapshot for the run.
type ConversionRequest struct {
	Kind       ContentKind
	RawContent string
	Target     TargetWindow
	Options    Options
}

// FormatRun marks an inline-formatted span inside a table cell. Offsets
// are rune positions into Cell.Text, end-exclusive.
type FormatRun struct {
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Bold   bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Strike bool   `json:"strike,omitempty" yaml:"strike,omitempty"`
	Code   bool   `json:"code,omitempty" yaml:"code,omitempty"`
	Link   string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Cell is one table cell: flattened text plus optional formatting runs.
type Cell struct {
	Text string      `json:"text" yaml:"text"`
	Runs []FormatRun `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// DocumentArtifact is a converted document written to a temporary file.
// The delivery engine owns the file until delivery completes or fails.
type DocumentArtifact struct {
	// Path is the temporary file location.
	Path string

	// Keep indicates the file must be retained in the save directory
	// instead of deleted after delivery.
	Keep bool
}

// TableArtifact is a parsed table ready for native spreadsheet insertion.
// No file backs it.
type TableArtifact struct {
	Rows [][]Cell
}

// ConversionResult is the tagged outcome of the conversion stage: exactly
// one of Document, Table, or Err is set.
type ConversionResult struct {
	Document *DocumentArtifact
	Table    *TableArtifact
	Err      error
}

// Failed reports whether the conversion produced no artifact.
func (r ConversionResult) Failed() bool { return r.Err != nil }

// DocumentResult wraps a document artifact as a ConversionResult.
func DocumentResult(path string, keep bool) ConversionResult {
	return ConversionResult{Document: &DocumentArtifact{Path: path, Keep: keep}}
}

// TableResult wraps parsed rows as a ConversionResult.
func TableResult(rows [][]Cell) ConversionResult {
	return ConversionResult{Table: &TableArtifact{Rows: rows}}
}

// FailureResult wraps an error as a ConversionResult.
func FailureResult(err error) ConversionResult {
	return ConversionResult{Err: err}
}

// DeliveryOutcome is the terminal value of one pipeline run, reported to
// the trigger origin. It is not persisted by the pipeline itself.
type DeliveryOutcome struct {
	Success bool
	Target  TargetApp
	Detail  string
	Err     error
}

// FailureReason tags the defined failure classes of the pipeline.
type FailureReason string

const (
	// ReasonClassificationEmpty marks the benign empty-clipboard no-op.
	ReasonClassificationEmpty FailureReason = "CLASSIFICATION_EMPTY"

	// ReasonBusy marks a trigger rejected because a run is in flight.
	ReasonBusy FailureReason = "BUSY"

	ReasonConverterMissing   FailureReason = "CONVERTER_MISSING"
	ReasonConverterTimeout   FailureReason = "CONVERTER_TIMEOUT"
	ReasonConverterError     FailureReason = "CONVERTER_ERROR"
	ReasonFilterMissing      FailureReason = "FILTER_MISSING"
	ReasonDeliveryTargetLost FailureReason = "DELIVERY_TARGET_LOST"
	ReasonConfigInvalid      FailureReason = "CONFIG_INVALID"
)

// PipelineError is a structured failure carrying its reason class. The
// wrapped error holds the underlying tool diagnostic when one exists.
type PipelineError struct {
	Reason FailureReason
	Op     string
	Err    error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Op)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error { return e.Err }

// Failure builds a PipelineError for the given reason.
func Failure(reason FailureReason, op string, err error) *PipelineError {
	return &PipelineError{Reason: reason, Op: op, Err: err}
}

// Failuref builds a PipelineError with a formatted message and no cause.
func Failuref(reason FailureReason, format string, args ...any) *PipelineError {
	return &PipelineError{Reason: reason, Op: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the FailureReason from err, or empty when err is nil
// or untagged.
func ReasonOf(err error) FailureReason {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ""
}
