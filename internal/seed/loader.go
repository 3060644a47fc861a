// Package seed reads a seed directory into memory.
package seed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/Project-Sylos/Mimic/internal/types"
)

// ErrMultipleSparse is returned when more than one seed path ends in "sparse"
var ErrMultipleSparse = errors.New("more than one sparse seed entry")

// LoadDir loads every regular file below root, following symlinks to files
func LoadDir(root string) (*types.SeedSet, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat seed root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("seed root %s is not a directory", root)
	}

	return Load(os.DirFS(root))
}

// Load walks fsys and builds the seed set. Paths ending in "sparse" are recorded
// by size only; everything else is read fully into memory.
func Load(fsys fs.FS) (*types.SeedSet, error) {
	set := &types.SeedSet{
		Entries: make(map[string]types.SeedEntry),
	}
	sparsePath := ""

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// links are followed, like open() on a walked file name would
			target, err := fs.Stat(fsys, path)
			if err != nil {
				return fmt.Errorf("failed to stat linked seed file %s: %w", path, err)
			}
			if !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if strings.HasSuffix(path, types.SparseSuffix) {
			if sparsePath != "" {
				return fmt.Errorf("%w: %s and %s", ErrMultipleSparse, sparsePath, path)
			}
			info, err := fs.Stat(fsys, path)
			if err != nil {
				return fmt.Errorf("failed to stat sparse entry %s: %w", path, err)
			}
			sparsePath = path
			set.Entries[path] = types.SparseEntry(info.Size())
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
		set.Entries[path] = types.ContentEntry(data)
		set.TotalBytes += int64(len(data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// Paths returns the relative paths of the set in sorted order
func Paths(set *types.SeedSet) []string {
	paths := make([]string, 0, len(set.Entries))
	for p := range set.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
