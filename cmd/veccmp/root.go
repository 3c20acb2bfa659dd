package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"veccmp/internal/config"
	"veccmp/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "veccmp",
	Short: "Compare scalar and auto-vectorized builds of the TSVC benchmark suite",
	Long: `veccmp runs a scalar and a vectorized build of the TSVC benchmark suite
side by side, verifies that every function computes the same checksum in
both builds, measures the speedup the vectorized build achieves, and checks
independently (compiler optimization records or binary disassembly) whether
the compiler actually emitted vector code for each function.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
		return config.ValidateConfig()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.Load(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./veccmp.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	// Bound flag defaults outrank viper.SetDefault, so the flag carries the
	// real default.
	rootCmd.PersistentFlags().String("objdump", "riscv64-unknown-linux-gnu-objdump", "objdump command for disassembly")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("objdump", rootCmd.PersistentFlags().Lookup("objdump"))
}
