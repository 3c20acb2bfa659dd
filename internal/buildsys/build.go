// Package buildsys drives the TSVC make build that produces the scalar and
// vectorized benchmark binaries plus the optimization record file.
package buildsys

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"veccmp/internal/errors"
)

// compilerName is the TSVC COMPILER identity the harness builds under: the
// makefile is installed as makefiles/Makefile.<compilerName> and the
// binaries land in bin/<compilerName>/.
const compilerName = "veccmp"

// Default artifact locations under the TSVC root after a build.
func ScalarBinary(root string) string {
	return filepath.Join(root, "bin", compilerName, "tsvc_novec_default")
}

func VectorBinary(root string) string {
	return filepath.Join(root, "bin", compilerName, "tsvc_vec_default")
}

func OptRecord(root string) string {
	return filepath.Join(root, "src", "tsvc_vec.o_default.opt.yml")
}

// Build installs the caller's makefile into the TSVC tree and runs make with
// vectorization reporting enabled. Build output goes straight to the
// process's stdout and stderr so compiler diagnostics stay visible.
func Build(ctx context.Context, root, makefile string, rebuildAll bool) error {
	dst := filepath.Join(root, "makefiles", "Makefile."+compilerName)
	if err := copyFile(makefile, dst); err != nil {
		return fmt.Errorf("installing makefile: %w", err)
	}

	if rebuildAll {
		if err := runMake(ctx, root, "clean"); err != nil {
			return err
		}
	}
	return runMake(ctx, root, "COMPILER="+compilerName, "VEC_REPORT=1")
}

func runMake(ctx context.Context, root string, args ...string) error {
	cmd := exec.CommandContext(ctx, "make", args...)
	cmd.Dir = root
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &errors.ExternalToolError{Tool: "make " + args[len(args)-1], Err: err}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
