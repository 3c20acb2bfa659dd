package benchmark

import (
	"strconv"
	"strings"

	"veccmp/internal/errors"
)

// Record is one observation for one function from one benchmark binary.
type Record struct {
	Function string  `json:"function"`
	Duration float64 `json:"duration"`
	Checksum string  `json:"checksum"`
}

// Pair holds the scalar and vector observations for one function.
// Scalar.Function == Vector.Function is an invariant enforced by the
// synthesizer; a violation means the two binaries drifted out of sync.
type Pair struct {
	Scalar Record
	Vector Record
}

// Row is one persisted report line.
type Row struct {
	Function       string
	ChecksumMatch  bool
	Vectorized     bool
	ScalarDuration float64
	VectorDuration float64
}

// ParseLine parses one benchmark output line of the form
// "<name> <duration> <checksum>". Any other shape is a parse error; the
// suites print nothing else once the banner is filtered.
func ParseLine(source, line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Record{}, &errors.ParseError{
			Source: source,
			Detail: "expected \"<name> <duration> <checksum>\", got " + strconv.Quote(line),
		}
	}
	duration, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Record{}, &errors.ParseError{
			Source: source,
			Detail: "unparsable duration in " + strconv.Quote(line),
			Err:    err,
		}
	}
	return Record{Function: fields[0], Duration: duration, Checksum: fields[2]}, nil
}
