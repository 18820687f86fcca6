// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver inserts conversion artifacts into the resolved target
// application and owns the artifact file lifecycle: a transient document is
// deleted on every exit path unless the keep policy moves it into the save
// directory first.
package deliver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/pastemd/pkg/types"
)

// CaretInserter places a document artifact at the caret of a word
// processor window and optionally repositions the caret afterwards.
type CaretInserter interface {
	Insert(target types.TargetWindow, artifactPath string) error
	MoveCaretToEnd(target types.TargetWindow) error
}

// TableInserter places parsed rows at the active cell of a spreadsheet,
// applying formatting runs when present.
type TableInserter interface {
	InsertTable(target types.TargetWindow, rows [][]types.Cell) error
}

// Launcher opens an artifact with its default application, blocking until
// the application is ready or the context expires.
type Launcher interface {
	Open(ctx context.Context, path string) error
}

// ClipboardWriter replaces the clipboard content with a reference to an
// artifact file.
type ClipboardWriter interface {
	WriteFileReference(path string) error
}

// Notifier reports a run's terminal outcome to the user.
type Notifier interface {
	Notify(outcome types.DeliveryOutcome)
}

// Engine performs artifact delivery.
type Engine struct {
	inserter  CaretInserter
	tables    TableInserter
	launcher  Launcher
	clipboard ClipboardWriter
	logger    *slog.Logger
}

// NewEngine wires the delivery capabilities.
func NewEngine(inserter CaretInserter, tables TableInserter, launcher Launcher, clipboard ClipboardWriter, logger *slog.Logger) *Engine {
	return &Engine{
		inserter:  inserter,
		tables:    tables,
		launcher:  launcher,
		clipboard: clipboard,
		logger:    logger,
	}
}

// Deliver places the artifact in the target application, or falls back to
// the configured no-app policy when the target is unknown.
func (e *Engine) Deliver(ctx context.Context, result types.ConversionResult, target types.TargetWindow, opts types.Options) types.DeliveryOutcome {
	switch {
	case result.Err != nil:
		return types.DeliveryOutcome{Success: false, Target: target.App, Detail: result.Err.Error(), Err: result.Err}
	case result.Table != nil:
		return e.deliverTable(ctx, result.Table, target, opts)
	case result.Document != nil:
		return e.deliverDocument(ctx, result.Document, target, opts)
	default:
		return types.DeliveryOutcome{Success: false, Target: target.App, Detail: "empty conversion result"}
	}
}

func (e *Engine) deliverDocument(ctx context.Context, art *types.DocumentArtifact, target types.TargetWindow, opts types.Options) types.DeliveryOutcome {
	switch target.App {
	case types.TargetWord, types.TargetWPS, types.TargetExcel:
	default:
		return e.deliverDocumentNoApp(ctx, art, opts)
	}

	if err := e.inserter.Insert(target, art.Path); err != nil {
		// Partial delivery: the artifact exists but insertion failed.
		// The file lifecycle still completes before the failure report.
		detail := e.finishArtifact(art, opts)
		ferr := types.Failure(types.ReasonDeliveryTargetLost,
			fmt.Sprintf("inserting into %s", target.App), err)
		return types.DeliveryOutcome{Success: false, Target: target.App, Detail: detail, Err: ferr}
	}

	if opts.MoveCaretToEnd {
		if err := e.inserter.MoveCaretToEnd(target); err != nil {
			e.logger.Warn("caret reposition failed", "target", target.App, "error", err)
		}
	}

	detail := e.finishArtifact(art, opts)
	if detail == "" {
		detail = fmt.Sprintf("inserted document into %s", target.App)
	}
	return types.DeliveryOutcome{Success: true, Target: target.App, Detail: detail}
}

// finishArtifact completes the document file lifecycle: keep moves it into
// the save directory under a collision-safe name, otherwise it is deleted.
// Returns a human-readable note for the outcome detail, empty when the
// file was simply removed.
func (e *Engine) finishArtifact(art *types.DocumentArtifact, opts types.Options) string {
	if !art.Keep {
		removeQuiet(art.Path, e.logger)
		return ""
	}
	saved, err := Retain(art.Path, opts.SaveDir)
	if err != nil {
		e.logger.Warn("retaining artifact failed", "path", art.Path, "error", err)
		removeQuiet(art.Path, e.logger)
		return ""
	}
	return fmt.Sprintf("saved to %s", saved)
}

func (e *Engine) deliverDocumentNoApp(ctx context.Context, art *types.DocumentArtifact, opts types.Options) types.DeliveryOutcome {
	switch opts.NoAppAction {
	case types.ActionNone:
		removeQuiet(art.Path, e.logger)
		return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: "no target application; discarded"}

	case types.ActionSave:
		saved, err := Retain(art.Path, opts.SaveDir)
		if err != nil {
			removeQuiet(art.Path, e.logger)
			return e.failure(types.TargetUnknown, "saving artifact", err)
		}
		return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: fmt.Sprintf("saved to %s", saved)}

	case types.ActionClipboard:
		saved, err := Retain(art.Path, opts.SaveDir)
		if err != nil {
			removeQuiet(art.Path, e.logger)
			return e.failure(types.TargetUnknown, "saving artifact for clipboard reference", err)
		}
		if err := e.clipboard.WriteFileReference(saved); err != nil {
			return e.failure(types.TargetUnknown, fmt.Sprintf("writing clipboard reference to %s", saved), err)
		}
		return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: fmt.Sprintf("clipboard references %s", saved)}

	case types.ActionOpen:
		saved, err := Retain(art.Path, opts.SaveDir)
		if err != nil {
			removeQuiet(art.Path, e.logger)
			return e.failure(types.TargetUnknown, "saving artifact before open", err)
		}
		openCtx, cancel := context.WithTimeout(ctx, opts.LaunchWait)
		defer cancel()
		if err := e.launcher.Open(openCtx, saved); err != nil {
			return e.failure(types.TargetUnknown, fmt.Sprintf("opening %s", saved), err)
		}
		return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: fmt.Sprintf("opened %s", saved)}

	default:
		// Unreachable after load-time validation.
		removeQuiet(art.Path, e.logger)
		return e.failure(types.TargetUnknown, fmt.Sprintf("no_app_action %q", opts.NoAppAction), nil)
	}
}

func (e *Engine) deliverTable(ctx context.Context, tab *types.TableArtifact, target types.TargetWindow, opts types.Options) types.DeliveryOutcome {
	if target.App == types.TargetExcel {
		if err := e.tables.InsertTable(target, tab.Rows); err != nil {
			ferr := types.Failure(types.ReasonDeliveryTargetLost, "inserting table", err)
			return types.DeliveryOutcome{Success: false, Target: target.App, Detail: ferr.Error(), Err: ferr}
		}
		return types.DeliveryOutcome{
			Success: true,
			Target:  target.App,
			Detail:  fmt.Sprintf("inserted %d rows at active cell", len(tab.Rows)),
		}
	}

	// No spreadsheet in the foreground: materialize the rows as a TSV
	// file and apply the no-app policy to it.
	switch opts.NoAppAction {
	case types.ActionNone:
		return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: "no target application; discarded"}

	case types.ActionSave, types.ActionClipboard, types.ActionOpen:
		path, err := WriteTableFile(tab.Rows, opts.SaveDir)
		if err != nil {
			return e.failure(types.TargetUnknown, "writing table file", err)
		}
		if opts.NoAppAction == types.ActionClipboard {
			if err := e.clipboard.WriteFileReference(path); err != nil {
				return e.failure(types.TargetUnknown, fmt.Sprintf("writing clipboard reference to %s", path), err)
			}
			return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: fmt.Sprintf("clipboard references %s", path)}
		}
		if opts.NoAppAction == types.ActionOpen {
			openCtx, cancel := context.WithTimeout(ctx, opts.LaunchWait)
			defer cancel()
			if err := e.launcher.Open(openCtx, path); err != nil {
				return e.failure(types.TargetUnknown, fmt.Sprintf("opening %s", path), err)
			}
			return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: fmt.Sprintf("opened %s", path)}
		}
		return types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: fmt.Sprintf("saved to %s", path)}

	default:
		return e.failure(types.TargetUnknown, fmt.Sprintf("no_app_action %q", opts.NoAppAction), nil)
	}
}

func (e *Engine) failure(target types.TargetApp, op string, err error) types.DeliveryOutcome {
	e.logger.Error("delivery failed", "target", target, "op", op, "error", err)
	detail := op
	if err != nil {
		detail = fmt.Sprintf("%s: %v", op, err)
	}
	return types.DeliveryOutcome{Success: false, Target: target, Detail: detail, Err: err}
}

func removeQuiet(path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := removeFile(path); err != nil {
		logger.Warn("temp artifact cleanup failed", "path", path, "error", err)
	}
}
