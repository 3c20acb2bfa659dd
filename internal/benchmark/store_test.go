package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRoundTrip(t *testing.T) {
	rows := []Row{
		{Function: "s000", ChecksumMatch: true, Vectorized: true, ScalarDuration: 2.5, VectorDuration: 0.5},
		{Function: "s111", ChecksumMatch: false, Vectorized: false, ScalarDuration: 0.0123456789, VectorDuration: 1e-9},
		{Function: "vif", ChecksumMatch: true, Vectorized: false, ScalarDuration: 0, VectorDuration: 0},
	}

	path := filepath.Join(t.TempDir(), "benchmark_result.csv")
	require.NoError(t, WriteReport(path, rows))

	got, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestReportPreservesOrder(t *testing.T) {
	rows := []Row{
		{Function: "zzz", ScalarDuration: 1, VectorDuration: 1},
		{Function: "aaa", ScalarDuration: 1, VectorDuration: 1},
		{Function: "mmm", ScalarDuration: 1, VectorDuration: 1},
	}
	path := filepath.Join(t.TempDir(), "benchmark_result.csv")
	require.NoError(t, WriteReport(path, rows))

	got, err := ReadReport(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "zzz", got[0].Function)
	assert.Equal(t, "aaa", got[1].Function)
	assert.Equal(t, "mmm", got[2].Function)
}

func TestReadReportMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_result.csv")
	require.NoError(t, os.WriteFile(path, []byte("function,checksum_match,vectorized,scalar_duration,vector_duration\ns000,yes?,false,1.0,1.0\n"), 0644))

	_, err := ReadReport(path)
	assert.Error(t, err)
}

func TestReadReportMissingFile(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
