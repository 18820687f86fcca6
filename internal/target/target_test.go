// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package target

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pastemd/pkg/types"
)

func TestResolve_MapsProcesses(t *testing.T) {
	cases := []struct {
		name    string
		process string
		title   string
		want    types.TargetApp
	}{
		{"word", "WINWORD.EXE", "report.docx - Word", types.TargetWord},
		{"excel", "EXCEL.EXE", "Book1 - Excel", types.TargetExcel},
		{"wps spreadsheet process", "et.exe", "sheet.et", types.TargetExcel},
		{"wps writer", "wps.exe", "notes.docx - WPS Office", types.TargetWPS},
		{"wps unified showing sheet", "wps.exe", "budget.xlsx - WPS Office", types.TargetExcel},
		{"wps unified showing csv", "kwps", "data.csv", types.TargetExcel},
		{"browser", "firefox.exe", "some page", types.TargetUnknown},
		{"empty", "", "", types.TargetUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inspector := InspectorFunc(func() (ForegroundInfo, error) {
				return ForegroundInfo{ProcessName: tc.process, WindowTitle: tc.title}, nil
			})
			win := Resolve(inspector, nil)
			assert.Equal(t, tc.want, win.App)
		})
	}
}

func TestResolve_InspectorErrorIsUnknown(t *testing.T) {
	inspector := InspectorFunc(func() (ForegroundInfo, error) {
		return ForegroundInfo{}, errors.New("no window server")
	})
	win := Resolve(inspector, nil)
	assert.Equal(t, types.TargetUnknown, win.App)
}

func TestResolve_CarriesWindowDetails(t *testing.T) {
	inspector := InspectorFunc(func() (ForegroundInfo, error) {
		return ForegroundInfo{ProcessName: "WINWORD.EXE", WindowTitle: "doc - Word", Handle: uintptr(42)}, nil
	})
	win := Resolve(inspector, nil)
	assert.Equal(t, "WINWORD.EXE", win.ProcessName)
	assert.Equal(t, "doc - Word", win.WindowTitle)
	assert.Equal(t, uintptr(42), win.Handle)
}
