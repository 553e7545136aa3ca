package snapstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teampulse/internal/contract"
	"teampulse/schema"
)

func testSnapshot(scopeDate string, generatedAt time.Time) *schema.Snapshot {
	return &schema.Snapshot{
		GeneratedAt: generatedAt,
		ScopeDate:   scopeDate,
		Result: schema.AnalysisResult{
			ScopeDate: scopeDate,
			Members: map[string]*schema.MemberWorkload{
				"alice": {Username: "alice", ActiveTasks: 3, WorkloadScore: 30},
			},
		},
	}
}

// TestWriteAndLatest round-trips a snapshot through the store.
func TestWriteAndLatest(t *testing.T) {
	store := NewStore(t.TempDir(), 5)
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	path, err := store.Write("123", testSnapshot("2026-03-10", now))
	require.NoError(t, err)
	assert.FileExists(t, path)

	snap, err := store.LatestForDate("123", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", snap.ScopeDate)
	assert.True(t, snap.GeneratedAt.Equal(now))
	assert.Equal(t, 3, snap.Result.Members["alice"].ActiveTasks)

	// Historicity is derived from the file name at list time, never stored.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "is_historical")
}

// TestLatestPicksNewest returns the most recent same-date snapshot.
func TestLatestPicksNewest(t *testing.T) {
	store := NewStore(t.TempDir(), 5)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := range 3 {
		_, err := store.Write("123", testSnapshot("2026-03-10", base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	snap, err := store.LatestForDate("123", "2026-03-10")
	require.NoError(t, err)
	assert.True(t, snap.GeneratedAt.Equal(base.Add(2*time.Hour)))
}

// TestLatestNoData reports the missing-date cases as ErrNoData.
func TestLatestNoData(t *testing.T) {
	store := NewStore(t.TempDir(), 5)

	// No namespace directory at all.
	_, err := store.LatestForDate("123", "2026-03-10")
	assert.ErrorIs(t, err, contract.ErrNoData)

	// Snapshots exist, but for a different date.
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	_, werr := store.Write("123", testSnapshot("2026-03-10", now))
	require.NoError(t, werr)
	_, err = store.LatestForDate("123", "2026-03-09")
	assert.ErrorIs(t, err, contract.ErrNoData)
}

// TestLatestSkipsCorrupt ignores unreadable files instead of failing.
func TestLatestSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 5)
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	_, err := store.Write("123", testSnapshot("2026-03-10", now))
	require.NoError(t, err)

	// A newer file with valid naming but broken contents.
	name := filePrefix + "2026-03-10_" + now.Add(time.Hour).UTC().Format(snapTimeFormat) + fileSuffix
	require.NoError(t, os.WriteFile(filepath.Join(dir, "123", name), []byte("{broken"), 0o644))

	snap, err := store.LatestForDate("123", "2026-03-10")
	require.NoError(t, err)
	assert.True(t, snap.GeneratedAt.Equal(now))
}

// TestRetentionPrunes keeps only the newest files per namespace.
func TestRetentionPrunes(t *testing.T) {
	store := NewStore(t.TempDir(), 2)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := range 4 {
		_, err := store.Write("123", testSnapshot("2026-03-10", base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	infos, err := store.List("123")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.True(t, infos[0].GeneratedAt.After(infos[1].GeneratedAt))
	assert.True(t, infos[0].GeneratedAt.Equal(base.Add(3*time.Minute)))
}

// TestListAllNamespaces aggregates every namespace, newest first.
func TestListAllNamespaces(t *testing.T) {
	store := NewStore(t.TempDir(), 5)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := store.Write("alpha", testSnapshot("2024-05-01", base))
	require.NoError(t, err)
	_, err = store.Write("beta", testSnapshot("2024-05-01", base.Add(time.Hour)))
	require.NoError(t, err)

	infos, err := store.List("")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "beta", infos[0].Namespace)
	assert.Equal(t, "alpha", infos[1].Namespace)
	// A long-past scope date is flagged historical.
	assert.True(t, infos[0].IsHistorical)
}

// TestListEmptyStore returns no infos for a store that was never written.
func TestListEmptyStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"), 5)
	infos, err := store.List("")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

// TestClear removes one namespace or the whole store.
func TestClear(t *testing.T) {
	store := NewStore(t.TempDir(), 5)
	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	_, err := store.Write("alpha", testSnapshot("2026-03-10", now))
	require.NoError(t, err)
	_, err = store.Write("beta", testSnapshot("2026-03-10", now))
	require.NoError(t, err)

	require.NoError(t, store.Clear("alpha"))
	infos, err := store.List("")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "beta", infos[0].Namespace)

	require.NoError(t, store.Clear(""))
	infos, err = store.List("")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

// TestParseFileName rejects names that do not follow the snapshot pattern.
func TestParseFileName(t *testing.T) {
	valid := filePrefix + "2026-03-10_20260310T110000.000000000Z" + fileSuffix
	scopeDate, generatedAt, ok := parseFileName(valid)
	require.True(t, ok)
	assert.Equal(t, "2026-03-10", scopeDate)
	assert.Equal(t, 11, generatedAt.Hour())

	invalid := []string{
		"analysis_2026-03-10.json",
		"analysis_notadate_20260310T110000.000000000Z.json",
		"other_2026-03-10_20260310T110000.000000000Z.json",
		"analysis_2026-03-10_garbage.json",
		".DS_Store",
	}
	for _, name := range invalid {
		_, _, ok := parseFileName(name)
		assert.False(t, ok, name)
	}
}
