// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pastemd/pkg/types"
)

func TestParseTable_PlainCells(t *testing.T) {
	rows, err := ParseTable("| a | b |\n| --- | --- |\n| 1 | 2 |", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], 2)

	assert.Equal(t, "a", rows[0][0].Text)
	assert.Equal(t, "b", rows[0][1].Text)
	assert.Equal(t, "1", rows[1][0].Text)
	assert.Equal(t, "2", rows[1][1].Text)
	assert.Empty(t, rows[1][0].Runs)
}

func TestParseTable_FormattingRuns(t *testing.T) {
	block := "| h |\n| --- |\n| plain **bold** *it* |"
	rows, err := ParseTable(block, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cell := rows[1][0]
	assert.Equal(t, "plain bold it", cell.Text)
	require.Len(t, cell.Runs, 2)

	assert.Equal(t, types.FormatRun{Start: 6, End: 10, Bold: true}, cell.Runs[0])
	assert.Equal(t, types.FormatRun{Start: 11, End: 13, Italic: true}, cell.Runs[1])
}

func TestParseTable_KeepFormatOffDropsRuns(t *testing.T) {
	rows, err := ParseTable("| h |\n| --- |\n| **bold** |", false)
	require.NoError(t, err)
	cell := rows[1][0]
	assert.Equal(t, "bold", cell.Text)
	assert.Empty(t, cell.Runs)
}

func TestParseTable_StrikethroughAndCode(t *testing.T) {
	rows, err := ParseTable("| h |\n| --- |\n| ~~gone~~ `x` |", true)
	require.NoError(t, err)
	cell := rows[1][0]
	assert.Equal(t, "gone x", cell.Text)
	require.Len(t, cell.Runs, 2)
	assert.True(t, cell.Runs[0].Strike)
	assert.True(t, cell.Runs[1].Code)
}

func TestParseTable_LinkRun(t *testing.T) {
	rows, err := ParseTable("| h |\n| --- |\n| [docs](https://example.com) |", true)
	require.NoError(t, err)
	cell := rows[1][0]
	assert.Equal(t, "docs", cell.Text)
	require.Len(t, cell.Runs, 1)
	assert.Equal(t, "https://example.com", cell.Runs[0].Link)
}

func TestParseTable_BrBecomesNewline(t *testing.T) {
	rows, err := ParseTable("| h |\n| --- |\n| one<br>two |", true)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", rows[1][0].Text)
}

func TestParseTable_RuneOffsets(t *testing.T) {
	rows, err := ParseTable("| h |\n| --- |\n| héé **bold** |", true)
	require.NoError(t, err)
	cell := rows[1][0]
	require.Len(t, cell.Runs, 1)
	// Offsets count runes, not bytes.
	assert.Equal(t, 4, cell.Runs[0].Start)
	assert.Equal(t, 8, cell.Runs[0].End)
}

func TestParseTable_NotATable(t *testing.T) {
	_, err := ParseTable("just a paragraph", true)
	assert.ErrorIs(t, err, ErrNoTable)
}
