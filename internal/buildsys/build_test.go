package buildsys

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	harnesserrors "veccmp/internal/errors"
)

func TestArtifactPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("TSVC_2", "bin", "veccmp", "tsvc_novec_default"), ScalarBinary("TSVC_2"))
	assert.Equal(t, filepath.Join("TSVC_2", "bin", "veccmp", "tsvc_vec_default"), VectorBinary("TSVC_2"))
	assert.Equal(t, filepath.Join("TSVC_2", "src", "tsvc_vec.o_default.opt.yml"), OptRecord("TSVC_2"))
}

func TestBuildInstallsMakefile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake make is a shell script")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "makefiles"), 0755))

	makefile := filepath.Join(t.TempDir(), "Makefile")
	require.NoError(t, os.WriteFile(makefile, []byte("CC=clang\n"), 0644))

	// Fake make on PATH that records its arguments.
	bin := t.TempDir()
	log := filepath.Join(bin, "make.log")
	script := "#!/bin/sh\necho \"$@\" >> " + log + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "make"), []byte(script), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	require.NoError(t, Build(context.Background(), root, makefile, true))

	installed, err := os.ReadFile(filepath.Join(root, "makefiles", "Makefile.veccmp"))
	require.NoError(t, err)
	assert.Equal(t, "CC=clang\n", string(installed))

	calls, err := os.ReadFile(log)
	require.NoError(t, err)
	assert.Equal(t, "clean\nCOMPILER=veccmp VEC_REPORT=1\n", string(calls))
}

func TestBuildMakeFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake make is a shell script")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "makefiles"), 0755))

	makefile := filepath.Join(t.TempDir(), "Makefile")
	require.NoError(t, os.WriteFile(makefile, []byte("CC=clang\n"), 0644))

	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "make"), []byte("#!/bin/sh\nexit 2\n"), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	err := Build(context.Background(), root, makefile, false)
	require.Error(t, err)
	var te *harnesserrors.ExternalToolError
	assert.ErrorAs(t, err, &te)
}

func TestBuildMissingMakefile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "makefiles"), 0755))

	err := Build(context.Background(), root, filepath.Join(t.TempDir(), "absent"), false)
	assert.Error(t, err)
}
