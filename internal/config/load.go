// Package config loads harness configuration from file, environment and
// flags through viper.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("veccmp")
	}

	viper.SetEnvPrefix("VECCMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Set defaults
	viper.SetDefault("tsvc_root", "./TSVC_2")
	viper.SetDefault("makefile", "./Makefile")
	viper.SetDefault("objdump", "riscv64-unknown-linux-gnu-objdump")
	viper.SetDefault("report", "benchmark_result.csv")
	viper.SetDefault("history_db", "")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("speedup.regression", 1.0)
	viper.SetDefault("speedup.exceptional", 4.0)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
