// Package duckdb persists validation runs into a DuckDB database so
// mismatch history can be queried across runs.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for validation results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS validation_reports (
		run_at TIMESTAMP,
		file VARCHAR,
		total_variants BIGINT,
		ref_ok BIGINT,
		ref_mismatch BIGINT,
		snv_ref_mismatch BIGINT,
		indel_ref_mismatch BIGINT,
		wrong_build BIGINT,
		no_chrom_in_fasta BIGINT,
		mismatch_rate DOUBLE,
		error VARCHAR
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS bad_records (
		run_at TIMESTAMP,
		file VARCHAR,
		reason VARCHAR,
		chrom VARCHAR,
		start_position BIGINT,
		ref VARCHAR,
		ref_expected VARCHAR,
		ref_observed VARCHAR,
		alt VARCHAR,
		error VARCHAR
	)`)
	return err
}
