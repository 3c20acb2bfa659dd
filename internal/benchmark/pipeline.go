package benchmark

import (
	"context"

	"veccmp/internal/errors"
)

// Pipeline runs the scalar and vector benchmark binaries concurrently and
// yields their results in lockstep, one aligned pair per function. There is
// no buffering beyond the single in-flight record per side: a slow producer
// stalls the whole pipeline, which keeps the two measurements temporally
// aligned per function.
type Pipeline struct {
	scalar *Runner
	vector *Runner
}

// StartPipeline launches both binaries. Each runner fronts its own child
// process, so the two suites genuinely run in parallel.
func StartPipeline(ctx context.Context, scalarPath, vectorPath string) (*Pipeline, error) {
	p := &Pipeline{
		scalar: NewRunner(scalarPath),
		vector: NewRunner(vectorPath),
	}
	if err := p.scalar.Start(ctx); err != nil {
		return nil, err
	}
	if err := p.vector.Start(ctx); err != nil {
		p.scalar.cmd.Process.Kill()
		p.scalar.Wait()
		return nil, err
	}
	return p, nil
}

// Next blocks until both sides have produced their next record and returns
// the pair. ok is false once the scalar stream ends; at that point both
// children have been reaped and err carries any failure either side hit.
func (p *Pipeline) Next() (Pair, bool, error) {
	scalarRec, ok := <-p.scalar.Records()
	if !ok {
		return Pair{}, false, p.finish()
	}
	vectorRec, ok := <-p.vector.Records()
	if !ok {
		// The vector stream ended while the scalar one still had results.
		// The scalar child is mid-suite, so it has to be killed before it
		// can be reaped; its exit status is noise after the kill.
		p.scalar.cmd.Process.Kill()
		for range p.scalar.Records() {
		}
		p.scalar.Wait()
		// A vector-side parse error, crash or non-zero exit also shows up
		// as the stream closing early; report that failure rather than
		// misdiagnosing it as stream drift.
		if err := p.vector.Wait(); err != nil {
			return Pair{}, false, err
		}
		return Pair{}, false, &errors.AlignmentError{Scalar: scalarRec.Function, Vector: ""}
	}
	return Pair{Scalar: scalarRec, Vector: vectorRec}, true, nil
}

// Abort kills both children and reaps them. For consumers that stop early,
// e.g. on an alignment failure.
func (p *Pipeline) Abort() {
	p.scalar.cmd.Process.Kill()
	p.vector.cmd.Process.Kill()
	p.finish()
}

// finish drains both streams so their producers can close, then waits for
// both children to exit. Returning without reaping would leave zombies.
func (p *Pipeline) finish() error {
	for range p.scalar.Records() {
	}
	for range p.vector.Records() {
	}
	scalarErr := p.scalar.Wait()
	vectorErr := p.vector.Wait()
	if scalarErr != nil {
		return scalarErr
	}
	return vectorErr
}
