// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences one paste run: capture, classify, resolve,
// convert, deliver. At most one run is in flight per process; a trigger
// arriving while a run is active is rejected, never queued.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/pdiddy/pastemd/internal/classify"
	"github.com/pdiddy/pastemd/internal/clipboard"
	"github.com/pdiddy/pastemd/internal/target"
	"github.com/pdiddy/pastemd/pkg/types"
)

// State is the pipeline phase. Transitions are linear; any failure jumps
// straight back to idle after cleanup.
type State int32

const (
	StateIdle State = iota
	StateCapturing
	StateClassifying
	StateResolving
	StateConverting
	StateDelivering
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateClassifying:
		return "classifying"
	case StateResolving:
		return "resolving"
	case StateConverting:
		return "converting"
	case StateDelivering:
		return "delivering"
	default:
		return "unknown"
	}
}

// Converter builds the artifact for a request.
type Converter interface {
	Convert(ctx context.Context, req types.ConversionRequest) types.ConversionResult
}

// Deliverer places an artifact in the target application.
type Deliverer interface {
	Deliver(ctx context.Context, result types.ConversionResult, target types.TargetWindow, opts types.Options) types.DeliveryOutcome
}

// ConfigSource yields the immutable options snapshot a run operates on.
// Reloading configuration swaps the snapshot seen by future runs only.
type ConfigSource interface {
	Snapshot() types.Options
}

// Notifier reports a run's terminal outcome.
type Notifier interface {
	Notify(outcome types.DeliveryOutcome)
}

// Recorder persists run outcomes for diagnostics. Optional.
type Recorder interface {
	Record(kind types.ContentKind, outcome types.DeliveryOutcome)
}

// Machine owns the single-slot run gate and the stage sequence.
type Machine struct {
	state atomic.Int32

	reader    clipboard.Reader
	inspector target.Inspector
	converter Converter
	deliverer Deliverer
	config    ConfigSource
	notifier  Notifier
	recorder  Recorder
	logger    *slog.Logger
}

// New wires a pipeline machine. recorder may be nil.
func New(reader clipboard.Reader, inspector target.Inspector, converter Converter, deliverer Deliverer, config ConfigSource, notifier Notifier, recorder Recorder, logger *slog.Logger) *Machine {
	return &Machine{
		reader:    reader,
		inspector: inspector,
		converter: converter,
		deliverer: deliverer,
		config:    config,
		notifier:  notifier,
		recorder:  recorder,
		logger:    logger,
	}
}

// State reports the current phase.
func (m *Machine) State() State {
	return State(m.state.Load())
}

// Trigger starts one run asynchronously. It returns immediately: true when
// the run was accepted, false when another run holds the gate (the busy
// outcome is still reported through the notifier).
func (m *Machine) Trigger(ctx context.Context) bool {
	if !m.state.CompareAndSwap(int32(StateIdle), int32(StateCapturing)) {
		m.report(types.KindNone, m.busyOutcome())
		return false
	}
	go func() {
		kind, out := m.run(ctx)
		m.report(kind, out)
	}()
	return true
}

// RunOnce executes one run synchronously and returns its outcome. Used by
// the one-shot CLI path.
func (m *Machine) RunOnce(ctx context.Context) types.DeliveryOutcome {
	if !m.state.CompareAndSwap(int32(StateIdle), int32(StateCapturing)) {
		out := m.busyOutcome()
		m.report(types.KindNone, out)
		return out
	}
	kind, out := m.run(ctx)
	m.report(kind, out)
	return out
}

func (m *Machine) busyOutcome() types.DeliveryOutcome {
	err := types.Failuref(types.ReasonBusy, "a paste run is already in flight")
	return types.DeliveryOutcome{Success: false, Target: types.TargetUnknown, Detail: err.Op, Err: err}
}

// run executes the stage sequence. The gate is held from the CAS in the
// caller until the deferred reset; cleanup runs on every exit path.
func (m *Machine) run(ctx context.Context) (kind types.ContentKind, out types.DeliveryOutcome) {
	defer m.state.Store(int32(StateIdle))

	opts := m.config.Snapshot()
	kind = types.KindNone

	var tempPath string
	var keepTemp bool
	defer func() {
		// The delivery engine owns artifact cleanup; this catches runs
		// that never reached it.
		if tempPath == "" || keepTemp {
			return
		}
		if _, err := os.Stat(tempPath); err == nil {
			os.Remove(tempPath)
		}
	}()

	snap, err := m.reader.Read()
	if err != nil {
		m.logger.Error("clipboard capture failed", "error", err)
		return kind, types.DeliveryOutcome{Success: false, Target: types.TargetUnknown, Detail: "clipboard read failed", Err: err}
	}
	snap.HTML = clipboard.Sanitize(snap.HTML)

	m.state.Store(int32(StateClassifying))
	kind = classify.Classify(snap, opts)
	if kind == types.KindNone {
		// Benign no-op: nothing usable on the clipboard.
		return kind, types.DeliveryOutcome{Success: true, Target: types.TargetUnknown, Detail: "clipboard holds nothing actionable"}
	}

	m.state.Store(int32(StateResolving))
	win := target.Resolve(m.inspector, m.logger)

	m.state.Store(int32(StateConverting))
	raw := snap.PlainText
	if kind == types.KindHTMLRich {
		raw = snap.HTML
	}
	req := types.ConversionRequest{Kind: kind, RawContent: raw, Target: win, Options: opts}
	result := m.converter.Convert(ctx, req)
	if result.Err != nil {
		m.logger.Error("conversion failed",
			"kind", kind, "target", win.App,
			"converter", opts.ConverterPath, "filters", opts.Filters,
			"error", result.Err)
		return kind, types.DeliveryOutcome{Success: false, Target: win.App, Detail: result.Err.Error(), Err: result.Err}
	}
	if result.Document != nil {
		tempPath = result.Document.Path
		keepTemp = result.Document.Keep
	}

	m.state.Store(int32(StateDelivering))
	out = m.deliverer.Deliver(ctx, result, win, opts)
	m.logger.Info("run finished", "kind", kind, "target", win.App, "success", out.Success, "detail", out.Detail)
	return kind, out
}

func (m *Machine) report(kind types.ContentKind, out types.DeliveryOutcome) {
	if m.recorder != nil {
		m.recorder.Record(kind, out)
	}
	if m.notifier != nil {
		m.notifier.Notify(out)
	}
}
