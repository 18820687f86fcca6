// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_YieldsSnapshot(t *testing.T) {
	r := Static("plain", "<p>html</p>")
	snap, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "plain", snap.PlainText)
	assert.Equal(t, "<p>html</p>", snap.HTML)
	assert.False(t, snap.CapturedAt.IsZero())
}

func TestSanitize_StripsScripts(t *testing.T) {
	clean := Sanitize(`<p>ok</p><script>alert(1)</script>`)
	assert.Contains(t, clean, "<p>ok</p>")
	assert.NotContains(t, clean, "script")
	assert.NotContains(t, clean, "alert")
}

func TestSanitize_StripsEventHandlers(t *testing.T) {
	clean := Sanitize(`<p onclick="evil()">text</p>`)
	assert.NotContains(t, clean, "onclick")
	assert.Contains(t, clean, "text")
}

func TestSanitize_KeepsTablesAndDel(t *testing.T) {
	clean := Sanitize(`<table><tr><td>1</td></tr></table><del>old</del>`)
	assert.Contains(t, clean, "<td>1</td>")
	assert.Contains(t, clean, "<del>old</del>")
}

func TestSanitize_StripsControlCharacters(t *testing.T) {
	clean := Sanitize("<p>a\x00b\x07c</p>")
	assert.Contains(t, clean, "abc")
}

func TestSanitize_Empty(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
}
