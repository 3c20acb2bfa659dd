package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"veccmp/internal/benchmark"
	"veccmp/internal/buildsys"
	"veccmp/internal/history"
	"veccmp/internal/oracle"
	"veccmp/internal/telemetry"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build (if needed), benchmark both binaries and write the report",
	Long: `Runs the scalar and vectorized TSVC binaries concurrently, pairing their
per-function results in lockstep. When no pre-built binaries are given, the
suite is built first and the vectorization verdict comes from the compiler's
optimization record file; for a pre-built vector binary the verdict comes
from disassembling it instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tsvcRoot := viper.GetString("tsvc_root")
		scalarBinary, _ := cmd.Flags().GetString("scalar-binary")
		vectorBinary, _ := cmd.Flags().GetString("vector-binary")
		rebuildAll, _ := cmd.Flags().GetBool("rebuild-all")
		saveHistory, _ := cmd.Flags().GetBool("save")

		// A missing binary on either side means we build the suite ourselves.
		prebuilt := scalarBinary != "" && vectorBinary != ""
		if !prebuilt {
			slog.Info("building TSVC", "root", tsvcRoot, "rebuild_all", rebuildAll)
			if err := buildsys.Build(ctx, tsvcRoot, viper.GetString("makefile"), rebuildAll); err != nil {
				return err
			}
		}
		if scalarBinary == "" {
			scalarBinary = buildsys.ScalarBinary(tsvcRoot)
		}

		// The oracle is chosen by how the vector binary came to be: our own
		// build leaves an optimization record behind; an externally built
		// binary has to be disassembled.
		var source oracle.Source
		if vectorBinary == "" {
			vectorBinary = buildsys.VectorBinary(tsvcRoot)
			source = &oracle.RecordSource{Path: buildsys.OptRecord(tsvcRoot)}
		} else {
			source = &oracle.BinarySource{Path: vectorBinary, Objdump: viper.GetString("objdump")}
		}

		slog.Info("resolving vectorization verdict")
		verdict, err := source.Verdict(ctx)
		if err != nil {
			return err
		}

		if addr := viper.GetString("metrics_addr"); addr != "" {
			telemetry.StartMetricsServer(addr)
		}

		started := time.Now()
		rows, err := runBenchmarks(ctx, cmd, scalarBinary, vectorBinary, verdict)
		if err != nil {
			return err
		}

		reportPath := viper.GetString("report")
		if err := benchmark.WriteReport(reportPath, rows); err != nil {
			return err
		}
		slog.Info("report written", "path", reportPath, "functions", len(rows))

		if saveHistory {
			if err := saveRun(started, scalarBinary, vectorBinary, rows); err != nil {
				return err
			}
		}
		return nil
	},
}

func runBenchmarks(ctx context.Context, cmd *cobra.Command, scalarBinary, vectorBinary string, verdict oracle.Verdict) ([]benchmark.Row, error) {
	slog.Info("starting benchmark pipeline", "scalar", scalarBinary, "vector", vectorBinary)
	pipeline, err := benchmark.StartPipeline(ctx, scalarBinary, vectorBinary)
	if err != nil {
		return nil, err
	}

	synth := benchmark.NewSynthesizer(verdict, func(o benchmark.Outcome) {
		printOutcome(cmd.OutOrStdout(), o)
		telemetry.FunctionsProcessed.Inc()
		if !o.ChecksumMatch {
			telemetry.ChecksumMismatches.Inc()
		}
		if o.Vectorized {
			telemetry.VectorizedFunctions.Inc()
		}
		if o.Class != benchmark.ClassUndefined {
			telemetry.Speedup.Observe(o.Speedup)
		}
	})
	synth.RegressionBelow = viper.GetFloat64("speedup.regression")
	synth.ExceptionalAt = viper.GetFloat64("speedup.exceptional")

	if err := synth.Run(pipeline); err != nil {
		return nil, err
	}
	return synth.Rows(), nil
}

func saveRun(started time.Time, scalarBinary, vectorBinary string, rows []benchmark.Row) error {
	dbPath := viper.GetString("history_db")
	if dbPath == "" {
		return fmt.Errorf("--save requires history_db to be configured")
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save(history.Run{
		StartedAt:    started,
		ScalarBinary: scalarBinary,
		VectorBinary: vectorBinary,
		Rows:         rows,
	})
	if err != nil {
		return err
	}
	slog.Info("run saved to history", "id", id, "db", dbPath)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("scalar-binary", "", "Pre-built scalar binary (skips building when both binaries are given)")
	runCmd.Flags().String("vector-binary", "", "Pre-built vectorized binary (verdict comes from disassembly)")
	runCmd.Flags().BoolP("rebuild-all", "B", false, "Run make clean before building")
	runCmd.Flags().Bool("save", false, "Save the run to the history database")
	runCmd.Flags().StringP("output", "o", "benchmark_result.csv", "Report output path")
	runCmd.Flags().String("metrics-addr", "", "Expose Prometheus progress metrics on this address")

	viper.BindPFlag("report", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("metrics_addr", runCmd.Flags().Lookup("metrics-addr"))
}
