package benchmark

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strings"

	"veccmp/internal/errors"
)

// bannerPrefix marks the non-data header line the TSVC suites print before
// their results.
const bannerPrefix = "Loop"

// Runner supervises one benchmark child process. It reads the merged
// stdout/stderr stream line by line, parses each result into a Record and
// sends it on an owned channel. The channel is closed when the child's
// output ends; that close is the consumer's end-of-stream signal.
type Runner struct {
	Path string

	cmd     *exec.Cmd
	records chan Record
	err     error // set by the producer goroutine before the channel closes
}

// NewRunner prepares a runner for one benchmark binary.
func NewRunner(path string) *Runner {
	return &Runner{Path: path, records: make(chan Record)}
}

// Records is the stream of parsed results. Receives block until the child
// produces a line; a closed channel means the output ended.
func (r *Runner) Records() <-chan Record {
	return r.records
}

// Start launches the child and begins streaming. The binary is run under
// stdbuf -o0 so libc does not block-buffer stdout behind the pipe; without
// it results arrive in one burst at exit and the live report is useless.
func (r *Runner) Start(ctx context.Context) error {
	r.cmd = exec.CommandContext(ctx, "stdbuf", "-o0", r.Path)

	pr, pw, err := os.Pipe()
	if err != nil {
		return &errors.ExternalToolError{Tool: r.Path, Err: err}
	}
	r.cmd.Stdout = pw
	r.cmd.Stderr = pw

	if err := r.cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return &errors.ExternalToolError{Tool: r.Path, Err: err}
	}
	pw.Close() // the child holds the write end now

	go r.produce(pr)
	return nil
}

func (r *Runner) produce(pr *os.File) {
	defer close(r.records)
	defer pr.Close()

	scanner := bufio.NewScanner(pr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, bannerPrefix) {
			continue
		}
		rec, err := ParseLine(r.Path, line)
		if err != nil {
			r.err = err
			r.cmd.Process.Kill() // stop the child, nothing it prints can be trusted
			return
		}
		r.records <- rec
	}
	if err := scanner.Err(); err != nil {
		r.err = &errors.ExternalToolError{Tool: r.Path, Err: err}
	}
}

// Wait reaps the child process. It must be called after the records channel
// has closed and returns the first error the stream hit, if any.
func (r *Runner) Wait() error {
	waitErr := r.cmd.Wait()
	if r.err != nil {
		return r.err
	}
	if waitErr != nil {
		return &errors.ExternalToolError{Tool: r.Path, Err: waitErr}
	}
	return nil
}
