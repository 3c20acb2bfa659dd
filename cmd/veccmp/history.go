package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"veccmp/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past runs saved with 'run --save'",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.List(limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tStarted\tScalar\tVector")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.StartedAt.Format(time.RFC822), r.ScalarBinary, r.VectorBinary)
		}
		return w.Flush()
	},
}

var historyCompareCmd = &cobra.Command{
	Use:   "compare <prev-id> [curr-id]",
	Short: "Compare per-function speedups between two saved runs",
	Long: `Compares per-function speedups between two saved runs. When curr-id is
omitted the latest saved run is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prevID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		prev, err := store.Load(prevID)
		if err != nil {
			return err
		}

		var curr *history.Run
		if len(args) == 2 {
			currID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[1])
			}
			curr, err = store.Load(currID)
			if err != nil {
				return err
			}
		} else {
			curr, err = store.Latest()
			if err != nil {
				return err
			}
			if curr == nil {
				return fmt.Errorf("no runs saved yet")
			}
		}

		for _, comp := range history.Compare(prev, curr) {
			line := comp.String()
			if comp.VectorizedDrift {
				line += "  " + novecStyle.Render("verdict changed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func openHistory() (*history.Store, error) {
	dbPath := viper.GetString("history_db")
	if dbPath == "" {
		return nil, fmt.Errorf("history_db is not configured (set it in veccmp.yaml or VECCMP_HISTORY_DB)")
	}
	return history.Open(dbPath)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyCompareCmd)

	historyListCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}
