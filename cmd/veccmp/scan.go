package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"veccmp/internal/oracle"
)

var scanCmd = &cobra.Command{
	Use:   "scan <binary>",
	Short: "Disassemble a binary and print the per-function vectorization verdict",
	Long: `Scans every named symbol of a RISC-V ELF binary with objdump and reports
which functions contain vector instructions. This is the same evidence the
run command uses for pre-built binaries, exposed on its own.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := &oracle.BinarySource{Path: args[0], Objdump: viper.GetString("objdump")}
		verdict, err := src.Verdict(cmd.Context())
		if err != nil {
			return err
		}

		vectorizedOnly, _ := cmd.Flags().GetBool("vectorized-only")

		names := make([]string, 0, len(verdict))
		for name := range verdict {
			if vectorizedOnly && !verdict.Vectorized(name) {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			marker := novecStyle.Render("NOVEC")
			if verdict.Vectorized(name) {
				marker = autovecStyle.Render("AUTOVEC")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\t%s\n", name, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("vectorized-only", false, "Only list functions containing vector instructions")
}
