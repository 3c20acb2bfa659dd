package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	harnesserrors "veccmp/internal/errors"
)

func TestParseLine(t *testing.T) {
	rec, err := ParseLine("tsvc_vec", "s000 0.0123 51203.4")
	require.NoError(t, err)
	assert.Equal(t, Record{Function: "s000", Duration: 0.0123, Checksum: "51203.4"}, rec)
}

func TestParseLineCollapsesWhitespace(t *testing.T) {
	rec, err := ParseLine("tsvc_vec", "  s1115\t0.5\t 1024.0  ")
	require.NoError(t, err)
	assert.Equal(t, "s1115", rec.Function)
	assert.Equal(t, 0.5, rec.Duration)
	assert.Equal(t, "1024.0", rec.Checksum)
}

func TestParseLineWrongShape(t *testing.T) {
	for _, line := range []string{
		"s000 0.0123",
		"s000 0.0123 51203.4 extra",
		"s000",
	} {
		_, err := ParseLine("tsvc_vec", line)
		require.Error(t, err, line)
		var pe *harnesserrors.ParseError
		assert.ErrorAs(t, err, &pe, line)
	}
}

func TestParseLineBadDuration(t *testing.T) {
	_, err := ParseLine("tsvc_vec", "s000 fast 51203.4")
	require.Error(t, err)
	var pe *harnesserrors.ParseError
	assert.ErrorAs(t, err, &pe)
}
