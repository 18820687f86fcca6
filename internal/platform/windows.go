// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/pastemd/internal/target"
	"github.com/pdiddy/pastemd/pkg/types"
)

// windowsPlatform drives Windows through PowerShell, using the Office and
// WPS COM automation objects for caret work.
type windowsPlatform struct {
	logger *slog.Logger
}

func (p *windowsPlatform) powershell(script string) (string, error) {
	return runCommand(context.Background(), "powershell",
		"-NoProfile", "-NonInteractive", "-Command", script)
}

// Read captures the plain-text and HTML clipboard formats.
func (p *windowsPlatform) Read() (types.ClipboardSnapshot, error) {
	snap := types.ClipboardSnapshot{CapturedAt: time.Now()}

	plain, err := p.powershell(`Get-Clipboard -Raw`)
	if err != nil {
		return snap, fmt.Errorf("reading clipboard text: %w", err)
	}
	snap.PlainText = plain

	html, err := p.powershell(`Get-Clipboard -TextFormatType Html -Raw`)
	if err != nil {
		p.logger.Debug("clipboard html format unavailable", "error", err)
		return snap, nil
	}
	snap.HTML = stripCFHTMLHeader(html)
	return snap, nil
}

// stripCFHTMLHeader removes the CF_HTML clipboard envelope, returning the
// fragment between the StartFragment and EndFragment markers when present.
func stripCFHTMLHeader(raw string) string {
	const startMarker = "<!--StartFragment-->"
	const endMarker = "<!--EndFragment-->"
	if i := strings.Index(raw, startMarker); i >= 0 {
		frag := raw[i+len(startMarker):]
		if j := strings.Index(frag, endMarker); j >= 0 {
			frag = frag[:j]
		}
		return strings.TrimSpace(frag)
	}
	if i := strings.Index(strings.ToLower(raw), "<html"); i >= 0 {
		return raw[i:]
	}
	return ""
}

// foregroundScript resolves the foreground window's process name and
// title, emitting them on one line separated by a linefeed. PowerShell
// string interpolation is avoided here so the script can live in a Go
// raw string.
const foregroundScript = `Add-Type @"
using System;
using System.Runtime.InteropServices;
using System.Text;
public static class FG {
    [DllImport("user32.dll")] public static extern IntPtr GetForegroundWindow();
    [DllImport("user32.dll")] public static extern int GetWindowText(IntPtr h, StringBuilder s, int n);
    [DllImport("user32.dll")] public static extern uint GetWindowThreadProcessId(IntPtr h, out uint pid);
}
"@
$h = [FG]::GetForegroundWindow()
$sb = New-Object System.Text.StringBuilder 512
[void][FG]::GetWindowText($h, $sb, $sb.Capacity)
$procId = 0
[void][FG]::GetWindowThreadProcessId($h, [ref]$procId)
$name = (Get-Process -Id $procId -ErrorAction SilentlyContinue).ProcessName
$name + [char]10 + $sb.ToString()`

// Foreground resolves the foreground window's process name and title.
func (p *windowsPlatform) Foreground() (target.ForegroundInfo, error) {
	out, err := p.powershell(foregroundScript)
	if err != nil {
		return target.ForegroundInfo{}, fmt.Errorf("inspecting foreground window: %w", err)
	}
	name, title, _ := strings.Cut(out, "\n")
	return target.ForegroundInfo{ProcessName: strings.TrimSpace(name), WindowTitle: strings.TrimSpace(title)}, nil
}

// progidFor maps a resolved target to the COM automation identifier its
// process exposes.
func progidFor(t types.TargetWindow) string {
	proc := strings.ToLower(strings.TrimSuffix(t.ProcessName, ".exe"))
	switch t.App {
	case types.TargetWord:
		return "Word.Application"
	case types.TargetWPS:
		return "kwps.Application"
	case types.TargetExcel:
		if proc == "et" {
			return "ket.Application"
		}
		return "Excel.Application"
	default:
		return ""
	}
}

// Insert places the document artifact at the caret of the running word
// processor.
func (p *windowsPlatform) Insert(t types.TargetWindow, artifactPath string) error {
	progid := progidFor(t)
	if progid == "" || t.App == types.TargetExcel {
		return fmt.Errorf("caret insertion not supported for %s", t.App)
	}
	script := fmt.Sprintf(`$app = [Runtime.InteropServices.Marshal]::GetActiveObject(%s)
$app.Selection.InsertFile(%s)`, psQuote(progid), psQuote(artifactPath))
	if _, err := p.powershell(script); err != nil {
		return fmt.Errorf("inserting into %s: %w", t.App, err)
	}
	return nil
}

// MoveCaretToEnd collapses the selection to the end of the inserted
// content. wdStory is 6.
func (p *windowsPlatform) MoveCaretToEnd(t types.TargetWindow) error {
	progid := progidFor(t)
	if progid == "" || t.App == types.TargetExcel {
		return nil
	}
	script := fmt.Sprintf(`$app = [Runtime.InteropServices.Marshal]::GetActiveObject(%s)
[void]$app.Selection.EndKey(6)`, psQuote(progid))
	if _, err := p.powershell(script); err != nil {
		return fmt.Errorf("moving caret: %w", err)
	}
	return nil
}

// InsertTable writes rows starting at the active cell, applying character
// level formatting runs through the COM Characters range.
func (p *windowsPlatform) InsertTable(t types.TargetWindow, rows [][]types.Cell) error {
	progid := progidFor(t)
	if progid == "" {
		return fmt.Errorf("table insertion not supported for %s", t.App)
	}
	script := buildTableScript(progid, rows)
	if _, err := p.powershell(script); err != nil {
		return fmt.Errorf("inserting table: %w", err)
	}
	return nil
}

func buildTableScript(progid string, rows [][]types.Cell) string {
	var b strings.Builder
	fmt.Fprintf(&b, "$app = [Runtime.InteropServices.Marshal]::GetActiveObject(%s)\n", psQuote(progid))
	b.WriteString("$origin = $app.ActiveCell\n$sheet = $app.ActiveSheet\n")
	for i, row := range rows {
		for j, cell := range row {
			fmt.Fprintf(&b, "$c = $origin.Offset(%d, %d)\n", i, j)
			fmt.Fprintf(&b, "$c.Value2 = %s\n", psQuote(cell.Text))
			for _, run := range cell.Runs {
				// COM character indices are 1-based and inclusive.
				start := run.Start + 1
				length := run.End - run.Start
				if length <= 0 {
					continue
				}
				if run.Bold {
					fmt.Fprintf(&b, "$c.Characters(%d, %d).Font.Bold = $true\n", start, length)
				}
				if run.Italic {
					fmt.Fprintf(&b, "$c.Characters(%d, %d).Font.Italic = $true\n", start, length)
				}
				if run.Strike {
					fmt.Fprintf(&b, "$c.Characters(%d, %d).Font.Strikethrough = $true\n", start, length)
				}
				if run.Code {
					fmt.Fprintf(&b, "$c.Characters(%d, %d).Font.Name = 'Consolas'\n", start, length)
				}
				if run.Link != "" {
					fmt.Fprintf(&b, "[void]$sheet.Hyperlinks.Add($c, %s)\n", psQuote(run.Link))
				}
			}
		}
	}
	return b.String()
}

// Open launches the artifact with its file association.
func (p *windowsPlatform) Open(ctx context.Context, path string) error {
	if _, err := runCommand(ctx, "cmd", "/c", "start", "", path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

// WriteFileReference puts the artifact on the clipboard as a file drop.
func (p *windowsPlatform) WriteFileReference(path string) error {
	script := fmt.Sprintf(`Set-Clipboard -Path %s`, psQuote(path))
	if _, err := p.powershell(script); err != nil {
		return fmt.Errorf("writing file reference: %w", err)
	}
	return nil
}

// Notify raises a tray balloon with the run outcome.
func (p *windowsPlatform) Notify(outcome types.DeliveryOutcome) {
	detail := outcome.Detail
	if !outcome.Success && outcome.Err != nil {
		detail = outcome.Err.Error()
	}
	icon := "Info"
	if !outcome.Success {
		icon = "Error"
	}
	script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms
Add-Type -AssemblyName System.Drawing
$n = New-Object System.Windows.Forms.NotifyIcon
$n.Icon = [System.Drawing.SystemIcons]::Information
$n.Visible = $true
$n.ShowBalloonTip(4000, 'pastemd', %s, [System.Windows.Forms.ToolTipIcon]::%s)`,
		psQuote(detail), icon)
	if _, err := p.powershell(script); err != nil {
		p.logger.Warn("notification failed", "error", err)
	}
}

// psQuote wraps s in PowerShell single quotes, doubling embedded quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
