package benchmark

import (
	"math"

	"veccmp/internal/errors"
	"veccmp/internal/oracle"
)

// Class buckets a function's speedup for display.
type Class int

const (
	// ClassNeutral is a speedup within the expected range.
	ClassNeutral Class = iota
	// ClassRegression is a speedup below the regression threshold.
	ClassRegression
	// ClassExceptional is a speedup at or above the exceptional threshold.
	ClassExceptional
	// ClassUndefined means the vector duration was zero and the ratio is
	// meaningless.
	ClassUndefined
)

// Default classification thresholds: anything below 1x is a regression,
// 4x and above is exceptional.
const (
	DefaultRegressionBelow = 1.0
	DefaultExceptionalAt   = 4.0
)

// Outcome is one fully evaluated function: the persisted row plus the
// display-only speedup and class.
type Outcome struct {
	Row
	Speedup float64
	Class   Class
}

// LineWriter receives each outcome as it is produced, for live output.
type LineWriter func(Outcome)

// Synthesizer folds aligned pairs and the oracle's verdict into report rows.
type Synthesizer struct {
	Verdict         oracle.Verdict
	Line            LineWriter // optional
	RegressionBelow float64
	ExceptionalAt   float64

	rows []Row
}

func NewSynthesizer(verdict oracle.Verdict, line LineWriter) *Synthesizer {
	return &Synthesizer{
		Verdict:         verdict,
		Line:            line,
		RegressionBelow: DefaultRegressionBelow,
		ExceptionalAt:   DefaultExceptionalAt,
	}
}

// Consume evaluates one pair. The alignment invariant is checked first:
// mismatched function names invalidate every subsequent measurement, so the
// run stops there.
func (s *Synthesizer) Consume(p Pair) (Outcome, error) {
	if p.Scalar.Function != p.Vector.Function {
		return Outcome{}, &errors.AlignmentError{Scalar: p.Scalar.Function, Vector: p.Vector.Function}
	}

	out := Outcome{
		Row: Row{
			Function:       p.Scalar.Function,
			ChecksumMatch:  p.Scalar.Checksum == p.Vector.Checksum,
			Vectorized:     s.Verdict.Vectorized(p.Scalar.Function),
			ScalarDuration: p.Scalar.Duration,
			VectorDuration: p.Vector.Duration,
		},
	}
	out.Speedup, out.Class = s.classify(p.Scalar.Duration, p.Vector.Duration)

	s.rows = append(s.rows, out.Row)
	if s.Line != nil {
		s.Line(out)
	}
	return out, nil
}

func (s *Synthesizer) classify(scalar, vector float64) (float64, Class) {
	if vector == 0 {
		return math.Inf(1), ClassUndefined
	}
	speedup := scalar / vector
	switch {
	case speedup < s.RegressionBelow:
		return speedup, ClassRegression
	case speedup >= s.ExceptionalAt:
		return speedup, ClassExceptional
	default:
		return speedup, ClassNeutral
	}
}

// Rows returns the accumulated report in processing order.
func (s *Synthesizer) Rows() []Row {
	return s.rows
}

// Run drains the pipeline through Consume until either stream ends or a
// consistency error stops the run.
func (s *Synthesizer) Run(p *Pipeline) error {
	for {
		pair, ok, err := p.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := s.Consume(pair); err != nil {
			p.Abort()
			return err
		}
	}
}
