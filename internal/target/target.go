// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package target resolves the foreground window to a delivery target.
package target

import (
	"log/slog"
	"strings"

	"github.com/pdiddy/pastemd/pkg/types"
)

// ForegroundInfo describes the OS-reported focused window. Handle is an
// opaque platform value carried through to the delivery capabilities.
type ForegroundInfo struct {
	ProcessName string
	WindowTitle string
	Handle      any
}

// Inspector is the capability that reports the current foreground window.
type Inspector interface {
	Foreground() (ForegroundInfo, error)
}

// InspectorFunc adapts a function to the Inspector interface.
type InspectorFunc func() (ForegroundInfo, error)

// Foreground implements Inspector.
func (f InspectorFunc) Foreground() (ForegroundInfo, error) { return f() }

// spreadsheetTitleExts are document extensions that mark a WPS window as
// the spreadsheet component rather than the word processor. The unified
// WPS process hosts both, so the window title is the only cheap signal.
var spreadsheetTitleExts = []string{".et", ".ett", ".xls", ".xlsx", ".xlsm", ".csv"}

// Resolve maps the foreground window to a target application. It is a
// best-effort snapshot: the window may change before delivery, which then
// surfaces as a delivery failure, not a resolver error. Inspector failures
// resolve to TargetUnknown.
func Resolve(inspector Inspector, logger *slog.Logger) types.TargetWindow {
	info, err := inspector.Foreground()
	if err != nil {
		if logger != nil {
			logger.Debug("foreground lookup failed", "error", err)
		}
		return types.TargetWindow{App: types.TargetUnknown}
	}

	app := mapProcess(info.ProcessName, info.WindowTitle)
	if logger != nil {
		logger.Debug("resolved foreground target",
			"process", info.ProcessName, "title", info.WindowTitle, "app", app)
	}
	return types.TargetWindow{
		App:         app,
		ProcessName: info.ProcessName,
		WindowTitle: info.WindowTitle,
		Handle:      info.Handle,
	}
}

func mapProcess(process, title string) types.TargetApp {
	p := strings.ToLower(strings.TrimSpace(process))
	switch {
	case p == "":
		return types.TargetUnknown
	case strings.Contains(p, "winword") || strings.Contains(p, "microsoft word"):
		return types.TargetWord
	case strings.Contains(p, "excel"):
		return types.TargetExcel
	case p == "et.exe" || p == "et":
		// Standalone WPS spreadsheet process.
		return types.TargetExcel
	case strings.Contains(p, "wps") || strings.Contains(p, "kwps"):
		return resolveWPS(title)
	default:
		return types.TargetUnknown
	}
}

// resolveWPS disambiguates the unified WPS process by window title.
func resolveWPS(title string) types.TargetApp {
	t := strings.ToLower(title)
	for _, ext := range spreadsheetTitleExts {
		if strings.Contains(t, ext) {
			return types.TargetExcel
		}
	}
	return types.TargetWPS
}
