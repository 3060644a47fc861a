package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
)

// ErrNotFound is returned when a run or file is not in the manifest
var ErrNotFound = errors.New("not found")

const fileColumns = "copy_index, path, kind, source_size, output_size, segments, checksum"

// DB wraps a DuckDB connection holding the manifest of generated corpora
type DB struct {
	conn *sql.DB
	mu   sync.Mutex // Protects all database operations from concurrent access
}

// New opens the manifest database and initializes the schema.
// An empty dbPath opens an in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.InitializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// InitializeSchema creates the runs and files tables if they do not exist
func (db *DB) InitializeSchema() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(BuildRunsTableSQL()); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	if _, err := db.conn.Exec(BuildFilesTableSQL()); err != nil {
		return fmt.Errorf("failed to create files table: %w", err)
	}
	for _, stmt := range BuildIndexesSQL() {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// InsertRun stores a new run. An empty ID is replaced with a fresh UUID.
func (db *DB) InsertRun(run *types.Run) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = types.StatusRunning
	}

	query := `INSERT INTO runs (id, source, destination, copies, block_size, total_bytes, status, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var finished interface{}
	if run.FinishedAt != nil {
		finished = *run.FinishedAt
	}

	_, err := db.conn.Exec(query,
		run.ID,
		run.Source,
		run.Destination,
		run.Copies,
		run.BlockSize,
		run.TotalBytes,
		run.Status,
		run.StartedAt,
		finished,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	return nil
}

// FinishRun sets the final status and finish time of a run
func (db *DB) FinishRun(id, status string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.Exec(`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}

	return nil
}

// GetRun retrieves a run by its ID
func (db *DB) GetRun(id string) (*types.Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `SELECT id, source, destination, copies, block_size, total_bytes, status, started_at, finished_at
FROM runs WHERE id = ?`

	run, err := scanRun(db.conn.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	return run, nil
}

// ListRuns returns every run, newest first
func (db *DB) ListRuns() ([]*types.Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `SELECT id, source, destination, copies, block_size, total_bytes, status, started_at, finished_at
FROM runs ORDER BY started_at DESC, id`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []*types.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and every file recorded for it
func (db *DB) DeleteRun(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM files WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete files of run %s: %w", id, err)
	}

	result, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// BulkInsertFiles inserts the records of one or more copies in a single transaction
func (db *DB) BulkInsertFiles(runID string, records []types.FileRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO files (run_id, ` + fileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var checksum interface{}
		if rec.Checksum != "" {
			checksum = rec.Checksum
		}

		_, err = stmt.Exec(
			runID,
			rec.CopyIndex,
			rec.Path,
			rec.Kind,
			rec.SourceSize,
			rec.OutputSize,
			rec.Segments,
			checksum,
		)
		if err != nil {
			return fmt.Errorf("failed to insert file %d/%s: %w", rec.CopyIndex, rec.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListFiles returns the files recorded for one copy of a run, ordered by path
func (db *DB) ListFiles(runID string, copyIndex int) ([]types.FileRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `SELECT ` + fileColumns + ` FROM files WHERE run_id = ? AND copy_index = ? ORDER BY path`

	rows, err := db.conn.Query(query, runID, copyIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to query files of run %s copy %d: %w", runID, copyIndex, err)
	}
	defer rows.Close()

	files := []types.FileRecord{}
	for rows.Next() {
		rec, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}

	return files, nil
}

// GetFile retrieves a single file record by its seed-relative path
func (db *DB) GetFile(runID string, copyIndex int, path string) (*types.FileRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `SELECT ` + fileColumns + ` FROM files WHERE run_id = ? AND copy_index = ? AND path = ?`

	rec, err := scanFile(db.conn.QueryRow(query, runID, copyIndex, path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("file %s in copy %d of run %s: %w", path, copyIndex, runID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get file %s: %w", path, err)
	}

	return &rec, nil
}

// GetStats aggregates the files recorded for a run
func (db *DB) GetStats(runID string) (*types.RunStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `SELECT
	COUNT(DISTINCT copy_index),
	COUNT(*),
	COUNT(*) FILTER (WHERE kind = ?),
	CAST(COALESCE(SUM(output_size) FILTER (WHERE kind <> ?), 0) AS BIGINT)
FROM files WHERE run_id = ?`

	stats := &types.RunStats{RunID: runID}
	err := db.conn.QueryRow(query, types.KindSparse, types.KindSparse, runID).Scan(
		&stats.CopiesDone,
		&stats.Files,
		&stats.SparseFiles,
		&stats.BytesWritten,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for run %s: %w", runID, err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*types.Run, error) {
	run := &types.Run{}
	var finished sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.Destination,
		&run.Copies,
		&run.BlockSize,
		&run.TotalBytes,
		&run.Status,
		&run.StartedAt,
		&finished,
	)
	if err != nil {
		return nil, err
	}

	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}

	return run, nil
}

func scanFile(row rowScanner) (types.FileRecord, error) {
	var (
		rec      types.FileRecord
		checksum sql.NullString
	)

	err := row.Scan(
		&rec.CopyIndex,
		&rec.Path,
		&rec.Kind,
		&rec.SourceSize,
		&rec.OutputSize,
		&rec.Segments,
		&checksum,
	)
	if err != nil {
		return rec, err
	}

	if checksum.Valid {
		rec.Checksum = checksum.String
	}

	return rec, nil
}
