package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Project-Sylos/Mimic/internal/config"
	"github.com/Project-Sylos/Mimic/internal/db"
	"github.com/Project-Sylos/Mimic/internal/generator"
	"github.com/Project-Sylos/Mimic/internal/logging"
	"github.com/Project-Sylos/Mimic/internal/progress"
	"github.com/Project-Sylos/Mimic/internal/seed"
	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrManifestDisabled is returned by manifest queries when no manifest is open
var ErrManifestDisabled = errors.New("manifest is disabled")

// ErrNotFound is returned when a run or file is not in the manifest
var ErrNotFound = db.ErrNotFound

// Mimic is the public SDK entry point for generating near-duplicate corpora
type Mimic struct {
	cfg      *types.Config
	log      *zap.Logger
	out      io.Writer
	manifest *db.DB
}

// Option configures a Mimic instance
type Option func(*Mimic)

// WithLogger overrides the logger built from the configuration
func WithLogger(log *zap.Logger) Option {
	return func(m *Mimic) { m.log = log }
}

// WithOutput redirects user-facing progress output, stdout by default
func WithOutput(w io.Writer) Option {
	return func(m *Mimic) { m.out = w }
}

// New validates cfg and opens the manifest when it is enabled
func New(cfg *types.Config, opts ...Option) (*Mimic, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	m := &Mimic{
		cfg: cfg,
		out: os.Stdout,
	}
	for _, o := range opts {
		o(m)
	}

	if m.log == nil {
		log, err := logging.New(cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		m.log = log
	}

	if cfg.Manifest.Enabled {
		manifest, err := db.New(cfg.Manifest.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open manifest: %w", err)
		}
		m.manifest = manifest
	}

	return m, nil
}

// NewFromFile loads the configuration file at configPath and calls New
func NewFromFile(configPath string, opts ...Option) (*Mimic, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return New(cfg, opts...)
}

// Run loads the seed set once and writes every copy in increasing index order.
// Any error aborts the run; output already written stays in place.
func (m *Mimic) Run(ctx context.Context) (*types.Run, error) {
	set, err := seed.LoadDir(m.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}

	m.log.Info("seed set loaded",
		zap.String("source", m.cfg.Source),
		zap.Int("entries", len(set.Entries)),
		zap.Int64("total_bytes", set.TotalBytes),
	)

	run := &types.Run{
		ID:          uuid.New().String(),
		Source:      m.cfg.Source,
		Destination: m.cfg.Destination,
		Copies:      m.cfg.Copies,
		BlockSize:   m.cfg.BlockSize,
		TotalBytes:  set.TotalBytes,
		Status:      types.StatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if m.manifest != nil {
		if err := m.manifest.InsertRun(run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	err = m.writeCopies(ctx, run, set)

	run.Status = types.StatusCompleted
	if err != nil {
		run.Status = types.StatusFailed
	}
	if m.manifest != nil {
		if ferr := m.manifest.FinishRun(run.ID, run.Status); ferr != nil {
			m.log.Error("failed to finish run in manifest", zap.String("run_id", run.ID), zap.Error(ferr))
		}
	}

	if err != nil {
		m.log.Error("run failed", zap.String("run_id", run.ID), zap.Error(err))
		return run, err
	}

	m.log.Info("run finished",
		zap.String("run_id", run.ID),
		zap.Int("copies", run.Copies),
		zap.String("destination", run.Destination),
	)
	return run, nil
}

func (m *Mimic) writeCopies(ctx context.Context, run *types.Run, set *types.SeedSet) error {
	var reporter progress.Reporter = progress.NewLines(m.out)
	if m.cfg.Progress {
		reporter = progress.NewBar(m.out)
	}
	defer reporter.Close()

	reporter.Begin(set.TotalBytes, m.cfg.Copies)

	for i := 0; i < m.cfg.Copies; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run interrupted before copy %d: %w", i, err)
		}

		reporter.Copy(i, m.cfg.Copies)

		records, err := generator.WriteCopy(m.cfg.Destination, set, i, m.cfg.BlockSize)
		if err != nil {
			return fmt.Errorf("failed to write copy %d: %w", i, err)
		}

		m.log.Debug("copy written", zap.Int("index", i), zap.Int("files", len(records)))

		if m.manifest != nil {
			if err := m.manifest.BulkInsertFiles(run.ID, records); err != nil {
				return fmt.Errorf("failed to record copy %d: %w", i, err)
			}
		}
	}

	return nil
}

// Seed writes a synthetic seed tree under root from the fixture configuration
func (m *Mimic) Seed(root string) ([]string, error) {
	created, err := generator.GenerateSeedTree(root, m.cfg.Fixture)
	if err != nil {
		return created, fmt.Errorf("failed to generate seed tree: %w", err)
	}

	m.log.Info("seed tree generated", zap.String("root", root), zap.Int("files", len(created)))
	return created, nil
}

// Close flushes the logger and closes the manifest database
func (m *Mimic) Close() error {
	_ = m.log.Sync()
	if m.manifest != nil {
		return m.manifest.Close()
	}
	return nil
}

// GetConfig returns the current configuration
func (m *Mimic) GetConfig() *types.Config {
	return m.cfg
}

// Logger returns the logger in use
func (m *Mimic) Logger() *zap.Logger {
	return m.log
}

// ListRuns returns every recorded run, newest first
func (m *Mimic) ListRuns() ([]*types.Run, error) {
	if m.manifest == nil {
		return nil, ErrManifestDisabled
	}
	return m.manifest.ListRuns()
}

// GetRun returns a recorded run
func (m *Mimic) GetRun(id string) (*types.Run, error) {
	if m.manifest == nil {
		return nil, ErrManifestDisabled
	}
	return m.manifest.GetRun(id)
}

// DeleteRun removes a run from the manifest. Generated files are left on disk.
func (m *Mimic) DeleteRun(id string) error {
	if m.manifest == nil {
		return ErrManifestDisabled
	}
	return m.manifest.DeleteRun(id)
}

// ListFiles returns the files written for one copy of a run
func (m *Mimic) ListFiles(runID string, copyIndex int) ([]types.FileRecord, error) {
	if m.manifest == nil {
		return nil, ErrManifestDisabled
	}
	return m.manifest.ListFiles(runID, copyIndex)
}

// GetFile returns the record of a single file of one copy
func (m *Mimic) GetFile(runID string, copyIndex int, path string) (*types.FileRecord, error) {
	if m.manifest == nil {
		return nil, ErrManifestDisabled
	}
	return m.manifest.GetFile(runID, copyIndex, path)
}

// GetStats aggregates the files recorded for a run
func (m *Mimic) GetStats(runID string) (*types.RunStats, error) {
	if m.manifest == nil {
		return nil, ErrManifestDisabled
	}
	if _, err := m.manifest.GetRun(runID); err != nil {
		return nil, err
	}
	return m.manifest.GetStats(runID)
}

// Re-export types for convenience
type (
	Config      = types.Config
	Run         = types.Run
	RunStats    = types.RunStats
	FileRecord  = types.FileRecord
	SeedSet     = types.SeedSet
	SeedEntry   = types.SeedEntry
	APIResponse = types.APIResponse
)

// Re-export constants
const (
	StatusRunning   = types.StatusRunning
	StatusCompleted = types.StatusCompleted
	StatusFailed    = types.StatusFailed

	MarkerWidth      = generator.MarkerWidth
	DefaultBlockSize = generator.DefaultBlockSize
)
