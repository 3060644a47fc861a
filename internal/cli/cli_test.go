package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Project-Sylos/Mimic/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func seedSource(t *testing.T) string {
	t.Helper()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), bytes.Repeat([]byte("x"), 20), 0o644))
	return src
}

func TestGenerate(t *testing.T) {
	src := seedSource(t)
	dst := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "generate", src, dst, "-n", "2", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t,
		"Size of input data: 20\n"+
			"Creating 2 modified copies of this:\n"+
			"Writing 1 of 2...\n"+
			"Writing 2 of 2...\n",
		out)

	for _, index := range []string{"0", "1"} {
		info, err := os.Stat(filepath.Join(dst, index, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, int64(36), info.Size())
	}
}

func TestGenerateConfigFile(t *testing.T) {
	src := seedSource(t)
	dst := filepath.Join(t.TempDir(), "out")

	cfgPath := filepath.Join(t.TempDir(), "mimic.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("copies: 3\nblock_size: 4\nlogger:\n  level: error\n"), 0o644))

	out, err := execute(t, "generate", src, dst, "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Writing 3 of 3...")

	got, err := os.ReadFile(filepath.Join(dst, "2", "a.txt"))
	require.NoError(t, err)
	// 20 bytes in segments of 4, each followed by a marker
	assert.Len(t, got, 20+5*8)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		_, err := execute(t, "generate", filepath.Join(t.TempDir(), "none"), t.TempDir(), "-n", "1", "--log-level", "error")
		require.Error(t, err)
		assert.Equal(t, 1, ExitCode(err))
	})

	t.Run("negative copies", func(t *testing.T) {
		_, err := execute(t, "generate", seedSource(t), t.TempDir(), "-n", "-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("too many args", func(t *testing.T) {
		_, err := execute(t, "generate", "a", "b", "c")
		require.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := execute(t, "generate", "-c", filepath.Join(t.TempDir(), "none.yaml"))
		require.Error(t, err)
	})
}

func TestSeed(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "seed", root, "--files", "3", "--max-size", "16", "--sparse-size", "0", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 3 files under "+root+"\n", out)

	_, err = os.Stat(filepath.Join(root, "sparse"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+Version)
}

func TestExitCode(t *testing.T) {
	assert.Zero(t, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))

	err := ExitErr{Code: 3, Cause: errors.New("boom")}
	assert.Equal(t, 3, ExitCode(err))
	assert.EqualError(t, err, "boom")

	var buf bytes.Buffer
	PrintErr(&buf, err)
	assert.Equal(t, "Error: boom\n", buf.String())
}
