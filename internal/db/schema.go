package db

// Table names for the manifest
const (
	tableRuns  = "runs"
	tableFiles = "files"
)

// BuildRunsTableSQL returns the DDL of the runs table
func BuildRunsTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS ` + tableRuns + ` (
	id VARCHAR PRIMARY KEY,
	source VARCHAR NOT NULL,
	destination VARCHAR NOT NULL,
	copies INTEGER NOT NULL,
	block_size INTEGER NOT NULL,
	total_bytes BIGINT NOT NULL,
	status VARCHAR NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
)`
}

// BuildFilesTableSQL returns the DDL of the files table
func BuildFilesTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS ` + tableFiles + ` (
	run_id VARCHAR NOT NULL,
	copy_index INTEGER NOT NULL,
	path VARCHAR NOT NULL,
	kind VARCHAR NOT NULL,
	source_size BIGINT NOT NULL,
	output_size BIGINT NOT NULL,
	segments INTEGER NOT NULL,
	checksum VARCHAR,
	PRIMARY KEY (run_id, copy_index, path)
)`
}

// BuildIndexesSQL returns the index DDL statements
func BuildIndexesSQL() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_files_run_copy ON ` + tableFiles + ` (run_id, copy_index)`,
	}
}
