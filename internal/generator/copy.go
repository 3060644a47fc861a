package generator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/Project-Sylos/Mimic/internal/utils"
)

// sparseMarker is written at the last offset of every sparse copy
const sparseMarker = '!'

// WriteCopy materializes one perturbed copy of every seed entry under <dst>/<index>/.
// It returns one record per written file, ordered by path. Nothing is cleaned up on error.
func WriteCopy(dst string, set *types.SeedSet, index int, blockSize int) ([]types.FileRecord, error) {
	if set == nil {
		return nil, fmt.Errorf("seed set cannot be nil")
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("block size must be positive, got %d", blockSize)
	}

	paths := make([]string, 0, len(set.Entries))
	for p := range set.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	marker := EncodeMarker(index)
	records := make([]types.FileRecord, 0, len(paths))

	for _, rel := range paths {
		entry := set.Entries[rel]
		fn := utils.CopyPath(dst, index, rel)

		if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
			return records, fmt.Errorf("failed to create directory for %s: %w", fn, err)
		}

		var (
			record types.FileRecord
			err    error
		)
		switch entry.Kind {
		case types.EntrySparse:
			record, err = writeSparse(fn, entry.Size)
		case types.EntryContent:
			record, err = writeContent(fn, entry.Data, marker, blockSize)
		default:
			err = fmt.Errorf("unknown entry kind %d", entry.Kind)
		}
		if err != nil {
			return records, fmt.Errorf("failed to write %s: %w", fn, err)
		}

		record.CopyIndex = index
		record.Path = rel
		records = append(records, record)
	}

	return records, nil
}

// writeSparse creates a file of apparent size `size` with only its last byte written
func writeSparse(fn string, size int64) (types.FileRecord, error) {
	record := types.FileRecord{
		Kind:       types.KindSparse,
		SourceSize: size,
		OutputSize: size,
	}

	f, err := os.Create(fn)
	if err != nil {
		return record, err
	}

	if size > 0 {
		if _, err := f.Seek(size-1, io.SeekStart); err != nil {
			f.Close()
			return record, fmt.Errorf("failed to seek: %w", err)
		}
		if _, err := f.Write([]byte{sparseMarker}); err != nil {
			f.Close()
			return record, fmt.Errorf("failed to write sparse marker: %w", err)
		}
	}

	return record, f.Close()
}

// writeContent writes data in segments, each followed by marker
func writeContent(fn string, data, marker []byte, blockSize int) (types.FileRecord, error) {
	record := types.FileRecord{
		Kind:       types.KindContent,
		SourceSize: int64(len(data)),
	}

	f, err := os.Create(fn)
	if err != nil {
		return record, err
	}

	hash := NewChecksum()
	w := bufio.NewWriter(io.MultiWriter(f, hash))

	segment := EffectiveSegmentSize(len(data), blockSize)
	for pos := 0; pos < len(data); pos += segment {
		end := min(pos+segment, len(data))
		if _, err := w.Write(data[pos:end]); err != nil {
			f.Close()
			return record, err
		}
		if _, err := w.Write(marker); err != nil {
			f.Close()
			return record, err
		}
		record.Segments++
		record.OutputSize += int64(end-pos) + int64(len(marker))
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return record, err
	}

	record.Checksum = FormatChecksum(hash)
	return record, f.Close()
}
