// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/pdiddy/pastemd/internal/target"
	"github.com/pdiddy/pastemd/pkg/types"
)

// darwinPlatform drives macOS through pbpaste, pbcopy, osascript and open.
type darwinPlatform struct {
	logger *slog.Logger
}

func (p *darwinPlatform) osascript(script string) (string, error) {
	return runCommand(context.Background(), "osascript", "-e", script)
}

// Read captures the plain-text and HTML clipboard flavors.
func (p *darwinPlatform) Read() (types.ClipboardSnapshot, error) {
	snap := types.ClipboardSnapshot{CapturedAt: time.Now()}

	plain, err := runCommand(context.Background(), "pbpaste", "-Prefer", "txt")
	if err != nil {
		return snap, fmt.Errorf("reading clipboard text: %w", err)
	}
	snap.PlainText = plain

	// The HTML flavor is optional; most copies carry only text.
	raw, err := p.osascript(`try
	get the clipboard as «class HTML»
on error
	return ""
end try`)
	if err != nil {
		p.logger.Debug("clipboard html flavor unavailable", "error", err)
		return snap, nil
	}
	snap.HTML = decodeAppleHexData(raw)
	return snap, nil
}

// decodeAppleHexData unpacks osascript's «data HTML48544D...» literal into
// the bytes it encodes.
func decodeAppleHexData(raw string) string {
	raw = strings.TrimSpace(raw)
	start := strings.Index(raw, "«data ")
	if start < 0 {
		return ""
	}
	payload := raw[start+len("«data "):]
	end := strings.Index(payload, "»")
	if end < 0 {
		return ""
	}
	payload = payload[:end]
	// The payload opens with a four-character type code before the hex.
	if len(payload) <= 4 {
		return ""
	}
	decoded, err := hex.DecodeString(payload[4:])
	if err != nil {
		return ""
	}
	return string(decoded)
}

// Foreground reports the frontmost process and its front window title.
func (p *darwinPlatform) Foreground() (target.ForegroundInfo, error) {
	out, err := p.osascript(`tell application "System Events"
	set frontProc to first application process whose frontmost is true
	set procName to name of frontProc
	set winTitle to ""
	try
		set winTitle to name of front window of frontProc
	end try
end tell
return procName & linefeed & winTitle`)
	if err != nil {
		return target.ForegroundInfo{}, fmt.Errorf("inspecting foreground window: %w", err)
	}
	name, title, _ := strings.Cut(out, "\n")
	return target.ForegroundInfo{ProcessName: strings.TrimSpace(name), WindowTitle: strings.TrimSpace(title)}, nil
}

// Insert places the document artifact at the Word caret.
func (p *darwinPlatform) Insert(t types.TargetWindow, artifactPath string) error {
	switch t.App {
	case types.TargetWord:
		script := fmt.Sprintf(`tell application "Microsoft Word"
	insert file at text object of selection file name %s
end tell`, appleQuote(artifactPath))
		if _, err := p.osascript(script); err != nil {
			return fmt.Errorf("inserting into Word: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("caret insertion not supported for %s on macOS", t.App)
	}
}

// MoveCaretToEnd jumps the Word selection to the end of the document.
func (p *darwinPlatform) MoveCaretToEnd(t types.TargetWindow) error {
	if t.App != types.TargetWord {
		return nil
	}
	script := `tell application "Microsoft Word"
	set docEnd to end of content of text object of active document
	set selection start of selection to docEnd
	set selection end of selection to docEnd
end tell`
	if _, err := p.osascript(script); err != nil {
		return fmt.Errorf("moving Word caret: %w", err)
	}
	return nil
}

// InsertTable pastes rows into the active sheet. macOS paste goes through
// the clipboard, so per-run formatting is dropped.
func (p *darwinPlatform) InsertTable(t types.TargetWindow, rows [][]types.Cell) error {
	if err := p.writeClipboardText(tsv(rows)); err != nil {
		return err
	}
	p.logger.Debug("pasting table via clipboard", "rows", len(rows))
	script := `tell application "System Events"
	keystroke "v" using command down
end tell`
	if _, err := p.osascript(script); err != nil {
		return fmt.Errorf("pasting table: %w", err)
	}
	return nil
}

func (p *darwinPlatform) writeClipboardText(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "pbcopy")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Open launches the artifact with its default application.
func (p *darwinPlatform) Open(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "open", path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

// WriteFileReference puts a file reference on the clipboard so it can be
// pasted into Finder or a document.
func (p *darwinPlatform) WriteFileReference(path string) error {
	script := fmt.Sprintf(`set the clipboard to POSIX file %s`, appleQuote(path))
	if _, err := p.osascript(script); err != nil {
		return fmt.Errorf("writing file reference: %w", err)
	}
	return nil
}

// Notify posts a user notification with the run outcome.
func (p *darwinPlatform) Notify(outcome types.DeliveryOutcome) {
	title := "pastemd"
	detail := outcome.Detail
	if !outcome.Success && outcome.Err != nil {
		detail = outcome.Err.Error()
	}
	script := fmt.Sprintf(`display notification %s with title %s`,
		appleQuote(detail), appleQuote(title))
	if _, err := p.osascript(script); err != nil {
		p.logger.Warn("notification failed", "error", err)
	}
}

// appleQuote wraps s in AppleScript double quotes, escaping embedded
// quotes and backslashes.
func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
