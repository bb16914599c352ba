// Package storage persists analysis results between runs.
//
// The cache lives in a SQLite database under .ccs/. Payloads are the
// JSON-encoded result slices for one file, compressed with zstd, keyed
// by (path, content hash, tool version) so edits and tool upgrades both
// invalidate naturally.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"ccs/internal/logging"
)

// DB is the cache database. It is safe for concurrent use; the pool and
// SQLite's WAL mode handle parallel readers and the single writer.
type DB struct {
	conn    *sql.DB
	logger  *logging.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens or creates the cache database at <root>/.ccs/ccs.db.
func Open(root string, logger *logging.Logger) (*DB, error) {
	ccsDir := filepath.Join(root, ".ccs")
	if err := os.MkdirAll(ccsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .ccs directory: %w", err)
	}
	return OpenPath(filepath.Join(ccsDir, "ccs.db"), logger)
}

// OpenPath opens or creates the cache database at an explicit path.
func OpenPath(dbPath string, logger *logging.Logger) (*DB, error) {
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA foreign_keys=ON",    // Enable foreign key constraints
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
		"PRAGMA temp_store=MEMORY",  // Use memory for temp tables
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	db := &DB{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if !dbExists {
		logger.Info("Creating new cache database", map[string]interface{}{
			"path": dbPath,
		})
	}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.encoder != nil {
		db.encoder.Close()
	}
	if db.decoder != nil {
		db.decoder.Close()
	}
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.dbPath
}

func (db *DB) initializeSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS file_results (
	path          TEXT NOT NULL,
	content_hash  TEXT NOT NULL,
	tool_version  TEXT NOT NULL,
	language      TEXT NOT NULL DEFAULT '',
	payload       BLOB NOT NULL,
	created_at    TEXT NOT NULL,
	PRIMARY KEY (path, content_hash, tool_version)
);

CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	root         TEXT NOT NULL,
	files        INTEGER NOT NULL,
	findings     INTEGER NOT NULL,
	cache_hits   INTEGER NOT NULL,
	started_at   TEXT NOT NULL,
	duration_ms  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_results_path ON file_results(path);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Get returns the cached payload for a file, or ok=false on a miss.
func (db *DB) Get(path, contentHash, toolVersion string) ([]byte, bool, error) {
	var compressed []byte
	err := db.conn.QueryRow(
		`SELECT payload FROM file_results WHERE path = ? AND content_hash = ? AND tool_version = ?`,
		path, contentHash, toolVersion,
	).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	payload, err := db.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("cache payload decompress: %w", err)
	}
	return payload, true, nil
}

// Put stores the payload for a file, replacing any previous entry for the
// same key.
func (db *DB) Put(path, contentHash, toolVersion, language string, payload []byte) error {
	compressed := db.encoder.EncodeAll(payload, nil)
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO file_results (path, content_hash, tool_version, language, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		path, contentHash, toolVersion, language, compressed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// RecordRun persists a summary row for one completed analysis run.
func (db *DB) RecordRun(id, root string, files, findings, cacheHits int, startedAt time.Time, duration time.Duration) error {
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, root, files, findings, cache_hits, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, root, files, findings, cacheHits,
		startedAt.UTC().Format(time.RFC3339), duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int   `json:"entries"`
	Runs    int   `json:"runs"`
	Bytes   int64 `json:"bytes"`
}

// Stats returns entry and run counts plus the stored payload size.
func (db *DB) Stats() (Stats, error) {
	var stats Stats
	err := db.conn.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(payload)), 0) FROM file_results`,
	).Scan(&stats.Entries, &stats.Bytes)
	if err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&stats.Runs); err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes all cached file results and run records.
func (db *DB) Clear() error {
	if _, err := db.conn.Exec(`DELETE FROM file_results`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	if _, err := db.conn.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
