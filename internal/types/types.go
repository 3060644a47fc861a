package types

import (
	"time"
)

// Config represents the complete configuration for a Mimic run
type Config struct {
	Source      string         `json:"source" mapstructure:"source"`
	Destination string         `json:"destination" mapstructure:"destination"`
	Copies      int            `json:"copies" mapstructure:"copies"`
	BlockSize   int            `json:"block_size" mapstructure:"block_size"`
	Progress    bool           `json:"progress" mapstructure:"progress"`
	Manifest    ManifestConfig `json:"manifest" mapstructure:"manifest"`
	API         APIConfig      `json:"api" mapstructure:"api"`
	Logger      LoggerConfig   `json:"logger" mapstructure:"logger"`
	Fixture     FixtureConfig  `json:"fixture" mapstructure:"fixture"`
}

// ManifestConfig controls recording of generated files into DuckDB
type ManifestConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	DBPath  string `json:"db_path" mapstructure:"db_path"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// LoggerConfig represents the zap logger configuration
type LoggerConfig struct {
	Level    string `json:"level" mapstructure:"level"`
	Encoding string `json:"encoding" mapstructure:"encoding"`
}

// FixtureConfig describes a synthetic seed tree for the seed command
type FixtureConfig struct {
	Files      int   `json:"files" mapstructure:"files"`
	MinSize    int   `json:"min_size" mapstructure:"min_size"`
	MaxSize    int   `json:"max_size" mapstructure:"max_size"`
	MaxDepth   int   `json:"max_depth" mapstructure:"max_depth"`
	SparseSize int64 `json:"sparse_size" mapstructure:"sparse_size"`
	Seed       int64 `json:"seed" mapstructure:"seed"`
}

// EntryKind tags a SeedEntry as either in-memory content or a sparse placeholder
type EntryKind int

const (
	EntryContent EntryKind = iota
	EntrySparse
)

// String returns the name stored in the manifest
func (k EntryKind) String() string {
	switch k {
	case EntryContent:
		return KindContent
	case EntrySparse:
		return KindSparse
	default:
		return "unknown"
	}
}

// SeedEntry is one seed file. Content entries carry Data, sparse entries carry Size.
type SeedEntry struct {
	Kind EntryKind
	Data []byte
	Size int64
}

// ContentEntry builds a SeedEntry holding file bytes
func ContentEntry(data []byte) SeedEntry {
	return SeedEntry{Kind: EntryContent, Data: data, Size: int64(len(data))}
}

// SparseEntry builds a SeedEntry holding only a logical size
func SparseEntry(size int64) SeedEntry {
	return SeedEntry{Kind: EntrySparse, Size: size}
}

// SeedSet is the loaded seed tree keyed by slash-separated relative path.
// It is never mutated after loading.
type SeedSet struct {
	Entries    map[string]SeedEntry
	TotalBytes int64
}

// FileRecord describes one file written for one copy index
type FileRecord struct {
	CopyIndex  int    `json:"copy_index"`
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	SourceSize int64  `json:"source_size"`
	OutputSize int64  `json:"output_size"`
	Segments   int    `json:"segments"`
	Checksum   string `json:"checksum,omitempty"`
}

// Run represents a single generator invocation as stored in the manifest
type Run struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Copies      int        `json:"copies"`
	BlockSize   int        `json:"block_size"`
	TotalBytes  int64      `json:"total_bytes"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// RunStats aggregates the files recorded for a run
type RunStats struct {
	RunID        string `json:"run_id"`
	CopiesDone   int    `json:"copies_done"`
	Files        int    `json:"files"`
	SparseFiles  int    `json:"sparse_files"`
	BytesWritten int64  `json:"bytes_written"`
}

// APIResponse represents a generic API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Entry kind names
const (
	KindContent = "content"
	KindSparse  = "sparse"
)

// Run status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// SparseSuffix marks the seed file that is recorded by size only
const SparseSuffix = "sparse"
