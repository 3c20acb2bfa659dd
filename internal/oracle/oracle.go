// Package oracle answers one question per benchmark function: did the
// compiler vectorize it? Two evidence sources exist, a clang optimization
// record log and a disassembly scan of the compiled binary. Callers depend
// only on the Verdict they produce.
package oracle

import "context"

// Verdict maps function names to whether the compiler vectorized them.
// It is built once per run and read-only afterward, so sharing it across
// goroutines without locking is safe.
type Verdict map[string]bool

// Vectorized reports the verdict for a function. Absence of evidence means
// not vectorized; callers must use this instead of indexing the map so the
// default is explicit.
func (v Verdict) Vectorized(function string) bool {
	return v[function]
}

// Source produces a Verdict from one evidence source.
type Source interface {
	Verdict(ctx context.Context) (Verdict, error)
}
