// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the long-lived paste agent",
	Long: `Run starts the paste agent. Each line read on standard input triggers
one paste run; a trigger arriving while a run is in flight is rejected,
not queued. Bind your hotkey manager to write a newline to the agent's
stdin, or to invoke "pastemd paste" directly.

SIGHUP reloads the configuration file; the new snapshot applies to
future runs only. SIGINT or SIGTERM stops the agent.`,
	RunE: runAgent,
}

func runAgent(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	a, err := buildApp(opts, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)

	triggers := make(chan struct{})
	go func() {
		defer close(triggers)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			triggers <- struct{}{}
		}
	}()

	logger.Info("agent started", "hotkey", opts.Hotkey, "converter", opts.ConverterPath)
	fmt.Fprintln(cmd.ErrOrStderr(), "pastemd agent running; newline on stdin triggers a paste")

	for {
		select {
		case <-ctx.Done():
			logger.Info("agent stopping")
			return nil
		case <-reload:
			fresh, err := loadOptions()
			if err != nil {
				logger.Error("config reload rejected", "error", err)
				continue
			}
			a.store.Reload(fresh)
			logger.Info("config reloaded")
		case _, ok := <-triggers:
			if !ok {
				logger.Info("stdin closed, agent stopping")
				return nil
			}
			a.machine.Trigger(ctx)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
