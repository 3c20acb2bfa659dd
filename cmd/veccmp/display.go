package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"veccmp/internal/benchmark"
)

var (
	mismatchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
	autovecStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	novecStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	regressionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
	exceptionalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan
)

// renderOutcome formats one live report line: correctness, vectorization
// verdict and speedup, tab separated.
func renderOutcome(o benchmark.Outcome) string {
	match := "OK"
	if !o.ChecksumMatch {
		match = mismatchStyle.Render("MISMATCH")
	}

	verdict := novecStyle.Render("NOVEC")
	if o.Vectorized {
		verdict = autovecStyle.Render("AUTOVEC")
	}

	var speedup string
	switch o.Class {
	case benchmark.ClassUndefined:
		speedup = regressionStyle.Render("undefined")
	case benchmark.ClassRegression:
		speedup = regressionStyle.Render(fmt.Sprintf("%1.3fx", o.Speedup))
	case benchmark.ClassExceptional:
		speedup = exceptionalStyle.Render(fmt.Sprintf("%1.3fx", o.Speedup))
	default:
		speedup = fmt.Sprintf("%1.3fx", o.Speedup)
	}

	return fmt.Sprintf("%s:\t%s\t%s\t%s", o.Function, match, verdict, speedup)
}

func printOutcome(w io.Writer, o benchmark.Outcome) {
	fmt.Fprintln(w, renderOutcome(o))
}
