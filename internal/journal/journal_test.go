// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pastemd/pkg/types"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	j, err := Open(filepath.Join(t.TempDir(), "state", "journal.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	j.Record(types.KindMarkdownText, types.DeliveryOutcome{
		Success: true, Target: types.TargetWord, Detail: "inserted document into word",
	})
	j.Record(types.KindMarkdownTable, types.DeliveryOutcome{
		Success: false, Target: types.TargetExcel, Detail: "sheet closed",
		Err: types.Failuref(types.ReasonDeliveryTargetLost, "inserting table"),
	})

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "markdown-table", entries[0].Kind)
	assert.False(t, entries[0].Success)
	assert.Equal(t, string(types.ReasonDeliveryTargetLost), entries[0].Reason)

	assert.Equal(t, "markdown", entries[1].Kind)
	assert.True(t, entries[1].Success)
	assert.Empty(t, entries[1].Reason)
}

func TestJournal_RecentLimit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		j.Record(types.KindMarkdownText, types.DeliveryOutcome{Success: true, Target: types.TargetWord})
	}

	entries, err := j.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestJournal_EmptyHistory(t *testing.T) {
	j := openTestJournal(t)
	entries, err := j.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
