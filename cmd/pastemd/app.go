// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"sync/atomic"

	"github.com/pdiddy/pastemd/internal/convert"
	"github.com/pdiddy/pastemd/internal/deliver"
	"github.com/pdiddy/pastemd/internal/journal"
	"github.com/pdiddy/pastemd/internal/pipeline"
	"github.com/pdiddy/pastemd/internal/platform"
	"github.com/pdiddy/pastemd/pkg/types"
)

// optionsStore holds the live options snapshot. Runs read it once at
// start; Reload swaps it atomically for future runs.
type optionsStore struct {
	current atomic.Pointer[types.Options]
}

func newOptionsStore(opts types.Options) *optionsStore {
	s := &optionsStore{}
	s.current.Store(&opts)
	return s
}

// Snapshot implements pipeline.ConfigSource.
func (s *optionsStore) Snapshot() types.Options {
	return *s.current.Load()
}

// Reload replaces the snapshot seen by future runs.
func (s *optionsStore) Reload(opts types.Options) {
	s.current.Store(&opts)
}

// app bundles the wired pipeline and its closable resources.
type app struct {
	machine *pipeline.Machine
	store   *optionsStore
	journal *journal.Journal
	logger  *slog.Logger
}

// buildApp wires platform capabilities, converter, delivery engine, and
// the optional journal into a pipeline machine.
func buildApp(opts types.Options, logger *slog.Logger) (*app, error) {
	caps, err := platform.New(logger)
	if err != nil {
		return nil, err
	}

	store := newOptionsStore(opts)
	runner := convert.NewRunner(logger)
	orchestrator := convert.NewOrchestrator(runner, logger)
	engine := deliver.NewEngine(caps.Inserter, caps.Tables, caps.Launcher, caps.Files, logger)

	a := &app{store: store, logger: logger}

	var recorder pipeline.Recorder
	if opts.JournalPath != "" {
		j, err := journal.Open(opts.JournalPath, logger)
		if err != nil {
			return nil, err
		}
		a.journal = j
		recorder = j
	}

	a.machine = pipeline.New(caps.Clipboard, caps.Inspector, orchestrator, engine,
		store, &notifyGate{store: store, notifier: caps.Notifier}, recorder, logger)
	return a, nil
}

// Close releases app resources.
func (a *app) Close() error {
	if a.journal != nil {
		return a.journal.Close()
	}
	return nil
}

// notifyGate drops notifications when the current options disable them.
type notifyGate struct {
	store    *optionsStore
	notifier deliver.Notifier
}

// Notify implements pipeline.Notifier.
func (g *notifyGate) Notify(outcome types.DeliveryOutcome) {
	if !g.store.Snapshot().Notify {
		return
	}
	g.notifier.Notify(outcome)
}
