// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pastemd/pkg/types"
)

func TestTSV_FlattensCells(t *testing.T) {
	rows := [][]types.Cell{
		{{Text: "a\tb"}, {Text: "c"}},
		{{Text: "multi\nline"}, {Text: "x"}},
	}
	assert.Equal(t, "a b\tc\nmulti line\tx", tsv(rows))
}

func TestDecodeAppleHexData(t *testing.T) {
	// "hi" is 6869 in hex; the payload opens with the 4-char type code.
	assert.Equal(t, "hi", decodeAppleHexData("«data HTML6869»"))
	assert.Equal(t, "", decodeAppleHexData("no data literal"))
	assert.Equal(t, "", decodeAppleHexData("«data HTMLzz»"))
	assert.Equal(t, "", decodeAppleHexData(""))
}

func TestStripCFHTMLHeader(t *testing.T) {
	raw := "Version:0.9\r\nStartHTML:0097\r\n<html><body><!--StartFragment--><p>hi</p><!--EndFragment--></body></html>"
	assert.Equal(t, "<p>hi</p>", stripCFHTMLHeader(raw))

	assert.Equal(t, "<html><body>x</body></html>",
		stripCFHTMLHeader("Version:0.9\n<html><body>x</body></html>"))

	assert.Equal(t, "", stripCFHTMLHeader("no markup at all"))
}

func TestProgidFor(t *testing.T) {
	assert.Equal(t, "Word.Application",
		progidFor(types.TargetWindow{App: types.TargetWord, ProcessName: "WINWORD.EXE"}))
	assert.Equal(t, "kwps.Application",
		progidFor(types.TargetWindow{App: types.TargetWPS, ProcessName: "wps.exe"}))
	assert.Equal(t, "Excel.Application",
		progidFor(types.TargetWindow{App: types.TargetExcel, ProcessName: "EXCEL.EXE"}))
	assert.Equal(t, "ket.Application",
		progidFor(types.TargetWindow{App: types.TargetExcel, ProcessName: "et.exe"}))
	assert.Equal(t, "", progidFor(types.TargetWindow{App: types.TargetUnknown}))
}

func TestPSQuote(t *testing.T) {
	assert.Equal(t, "'plain'", psQuote("plain"))
	assert.Equal(t, "'it''s'", psQuote("it's"))
}

func TestAppleQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, appleQuote("plain"))
	assert.Equal(t, `"say \"hi\""`, appleQuote(`say "hi"`))
	assert.Equal(t, `"C:\\tmp"`, appleQuote(`C:\tmp`))
}

func TestBuildTableScript_AppliesRuns(t *testing.T) {
	rows := [][]types.Cell{
		{{Text: "head"}},
		{{Text: "bold cell", Runs: []types.FormatRun{{Start: 0, End: 4, Bold: true}}}},
	}
	script := buildTableScript("Excel.Application", rows)

	assert.Contains(t, script, "GetActiveObject('Excel.Application')")
	assert.Contains(t, script, "$origin.Offset(0, 0)")
	assert.Contains(t, script, "$origin.Offset(1, 0)")
	assert.Contains(t, script, "$c.Value2 = 'bold cell'")
	assert.Contains(t, script, "$c.Characters(1, 4).Font.Bold = $true")
	assert.False(t, strings.Contains(script, "Italic"), "no italic runs requested")
}

func TestBuildTableScript_CodeRunSetsMonospaceFont(t *testing.T) {
	rows := [][]types.Cell{
		{{Text: "x = 1 done", Runs: []types.FormatRun{{Start: 0, End: 5, Code: true}}}},
	}
	script := buildTableScript("Excel.Application", rows)

	assert.Contains(t, script, "$c.Characters(1, 5).Font.Name = 'Consolas'")
}

func TestForegroundScript_AvoidsInterpolation(t *testing.T) {
	// PowerShell backtick escapes cannot appear in the script source; the
	// name/title separator is concatenated as [char]10 instead.
	assert.Contains(t, foregroundScript, "[char]10")
	assert.False(t, strings.Contains(foregroundScript, "`n"), "backtick escape in script")
	assert.Contains(t, foregroundScript, "GetForegroundWindow")
}
