package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	Load("")

	assert.Equal(t, "./TSVC_2", viper.GetString("tsvc_root"))
	assert.Equal(t, "riscv64-unknown-linux-gnu-objdump", viper.GetString("objdump"))
	assert.Equal(t, "benchmark_result.csv", viper.GetString("report"))
	assert.Equal(t, 1.0, viper.GetFloat64("speedup.regression"))
	assert.Equal(t, 4.0, viper.GetFloat64("speedup.exceptional"))
}

func TestLoadFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("VECCMP_OBJDUMP", "llvm-objdump")

	Load("")

	assert.Equal(t, "llvm-objdump", viper.GetString("objdump"))
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	f, err := os.CreateTemp(t.TempDir(), "veccmp-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("tsvc_root: /opt/TSVC_2\nspeedup:\n  exceptional: 8.0\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	Load(f.Name())

	assert.Equal(t, "/opt/TSVC_2", viper.GetString("tsvc_root"))
	assert.Equal(t, 8.0, viper.GetFloat64("speedup.exceptional"))
	assert.Equal(t, 1.0, viper.GetFloat64("speedup.regression")) // default survives
}
