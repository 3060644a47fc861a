package generator

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRNG tests the random number generator functionality
func TestRNG(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 100; i++ {
		val1 := rng1.Intn(1000)
		val2 := rng2.Intn(1000)
		if val1 != val2 {
			t.Errorf("Same seed should produce same sequence. Iteration %d: got %d and %d", i, val1, val2)
		}
	}
}

func TestGenerateFileData(t *testing.T) {
	data := GenerateFileData(NewRNG(1), 1024)
	assert.Len(t, data, 1024)
	assert.Equal(t, data, GenerateFileData(NewRNG(1), 1024))
	assert.NotEqual(t, data, GenerateFileData(NewRNG(2), 1024))

	assert.Empty(t, GenerateFileData(NewRNG(1), 0))
}

func TestGenerateSeedTree(t *testing.T) {
	cfg := types.FixtureConfig{
		Files:      20,
		MinSize:    16,
		MaxSize:    2048,
		MaxDepth:   2,
		SparseSize: 1 << 20,
		Seed:       42,
	}

	root := t.TempDir()
	created, err := GenerateSeedTree(root, cfg)
	require.NoError(t, err)
	require.Len(t, created, cfg.Files+1)
	assert.Equal(t, types.SparseSuffix, created[len(created)-1])

	for _, rel := range created[:cfg.Files] {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, info.Size(), int64(cfg.MinSize))
		assert.LessOrEqual(t, info.Size(), int64(cfg.MaxSize))
	}

	info, err := os.Stat(filepath.Join(root, types.SparseSuffix))
	require.NoError(t, err)
	assert.Equal(t, cfg.SparseSize, info.Size())

	// same seed, same tree
	other := t.TempDir()
	again, err := GenerateSeedTree(other, cfg)
	require.NoError(t, err)
	assert.Equal(t, created, again)
	for _, rel := range created[:cfg.Files] {
		a, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(other, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, a, b, rel)
	}

	assert.Equal(t, sorted(relFiles(t, root)), sorted(created))
}

func TestGenerateSeedTreeNoSparse(t *testing.T) {
	root := t.TempDir()
	created, err := GenerateSeedTree(root, types.FixtureConfig{Files: 3, MinSize: 1, MaxSize: 1, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"file_1.bin", "file_2.bin", "file_3.bin"}, created)
}

func TestGenerateSeedTreeInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.FixtureConfig
	}{
		{name: "negative files", cfg: types.FixtureConfig{Files: -1}},
		{name: "inverted sizes", cfg: types.FixtureConfig{Files: 1, MinSize: 10, MaxSize: 5}},
		{name: "negative min size", cfg: types.FixtureConfig{Files: 1, MinSize: -1, MaxSize: 5}},
		{name: "negative depth", cfg: types.FixtureConfig{Files: 1, MaxDepth: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSeedTree(t.TempDir(), tt.cfg)
			require.Error(t, err)
		})
	}
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
