package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veccmp/internal/benchmark"
	"veccmp/internal/history"
)

func seedHistory(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	_, err = store.Save(history.Run{
		StartedAt: base,
		Rows: []benchmark.Row{
			{Function: "s000", Vectorized: true, ScalarDuration: 2.0, VectorDuration: 1.0},
		},
	})
	require.NoError(t, err)
	_, err = store.Save(history.Run{
		StartedAt: base.Add(time.Hour),
		Rows: []benchmark.Row{
			{Function: "s000", Vectorized: true, ScalarDuration: 3.0, VectorDuration: 1.0},
		},
	})
	require.NoError(t, err)
	return dbPath
}

func TestHistoryCompareDefaultsToLatestRun(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("history_db", seedHistory(t))

	var out bytes.Buffer
	historyCompareCmd.SetOut(&out)
	t.Cleanup(func() { historyCompareCmd.SetOut(nil) })

	// Only the previous run id is given; the current side is the latest run.
	require.NoError(t, historyCompareCmd.RunE(historyCompareCmd, []string{"1"}))

	assert.Contains(t, out.String(), "s000")
	assert.Contains(t, out.String(), "2.000x -> 3.000x")
}

func TestHistoryCompareExplicitIDs(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("history_db", seedHistory(t))

	var out bytes.Buffer
	historyCompareCmd.SetOut(&out)
	t.Cleanup(func() { historyCompareCmd.SetOut(nil) })

	require.NoError(t, historyCompareCmd.RunE(historyCompareCmd, []string{"2", "1"}))

	assert.Contains(t, out.String(), "3.000x -> 2.000x")
}

func TestHistoryCompareUnconfiguredDB(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("history_db", "")

	err := historyCompareCmd.RunE(historyCompareCmd, []string{"1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "history_db")
}
