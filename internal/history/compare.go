package history

import "fmt"

// Comparison is the per-function change between two runs.
type Comparison struct {
	Function        string
	SpeedupDiff     float64 // percentage change in vector-over-scalar speedup
	PrevSpeedup     float64
	CurrSpeedup     float64
	VectorizedDrift bool // the vectorization verdict changed between runs
}

// Compare reports how the current run moved relative to a previous one, for
// functions present in both. Functions whose vector duration was zero in
// either run are skipped, their speedups are undefined.
func Compare(prev, curr *Run) []Comparison {
	prevSpeedup := make(map[string]float64, len(prev.Rows))
	prevVectorized := make(map[string]bool, len(prev.Rows))
	for _, r := range prev.Rows {
		if r.VectorDuration == 0 {
			continue
		}
		prevSpeedup[r.Function] = r.ScalarDuration / r.VectorDuration
		prevVectorized[r.Function] = r.Vectorized
	}

	var comparisons []Comparison
	for _, r := range curr.Rows {
		if r.VectorDuration == 0 {
			continue
		}
		p, ok := prevSpeedup[r.Function]
		if !ok {
			continue
		}
		c := r.ScalarDuration / r.VectorDuration
		comp := Comparison{
			Function:        r.Function,
			PrevSpeedup:     p,
			CurrSpeedup:     c,
			VectorizedDrift: prevVectorized[r.Function] != r.Vectorized,
		}
		if p > 0 {
			comp.SpeedupDiff = ((c - p) / p) * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %.3fx -> %.3fx (%+.2f%%)", c.Function, c.PrevSpeedup, c.CurrSpeedup, c.SpeedupDiff)
}
