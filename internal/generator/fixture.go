package generator

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/Project-Sylos/Mimic/internal/utils"
)

// RNG wraps math/rand.Rand for seeded random generation
type RNG struct {
	*rand.Rand
}

// NewRNG creates a new seeded random number generator
func NewRNG(seed int64) *RNG {
	return &RNG{
		Rand: rand.New(rand.NewSource(seed)),
	}
}

// GenerateSeedTree writes a deterministic sample seed tree under root and returns
// the slash-separated relative paths it created. The same FixtureConfig always
// produces the same tree.
func GenerateSeedTree(root string, cfg types.FixtureConfig) ([]string, error) {
	if cfg.Files < 0 {
		return nil, fmt.Errorf("file count must be non-negative, got %d", cfg.Files)
	}
	if cfg.MinSize < 0 || cfg.MaxSize < cfg.MinSize {
		return nil, fmt.Errorf("invalid file size range: min=%d, max=%d", cfg.MinSize, cfg.MaxSize)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max_depth must be non-negative, got %d", cfg.MaxDepth)
	}

	rng := NewRNG(cfg.Seed)
	created := make([]string, 0, cfg.Files+1)

	for i := 0; i < cfg.Files; i++ {
		depth := rng.Intn(cfg.MaxDepth + 1)
		parts := make([]string, 0, depth+1)
		for d := 0; d < depth; d++ {
			parts = append(parts, fmt.Sprintf("dir_%d", rng.Intn(3)+1))
		}
		parts = append(parts, fmt.Sprintf("file_%d.bin", i+1))
		rel := utils.JoinPath(parts...)

		size := cfg.MinSize + rng.Intn(cfg.MaxSize-cfg.MinSize+1)
		data := GenerateFileData(rng, size)

		if err := writeFixtureFile(root, rel, data); err != nil {
			return created, err
		}
		created = append(created, rel)
	}

	if cfg.SparseSize > 0 {
		fn := filepath.Join(root, types.SparseSuffix)
		f, err := os.Create(fn)
		if err != nil {
			return created, fmt.Errorf("failed to create sparse placeholder: %w", err)
		}
		if err := f.Truncate(cfg.SparseSize); err != nil {
			f.Close()
			return created, fmt.Errorf("failed to size sparse placeholder: %w", err)
		}
		if err := f.Close(); err != nil {
			return created, fmt.Errorf("failed to close sparse placeholder: %w", err)
		}
		created = append(created, types.SparseSuffix)
	}

	return created, nil
}

func writeFixtureFile(root, rel string, data []byte) error {
	fn := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fixture file %s: %w", rel, err)
	}
	return nil
}
