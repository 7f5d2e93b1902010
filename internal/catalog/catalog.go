// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a ledger of retrieved native structures in a
// SQLite database under the output directory.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nativeget/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "natives.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at outputDir/index/natives.db,
// creating the schema if it does not exist.
func Open(outputDir string) (*Store, error) {
	dbDir := filepath.Join(outputDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS natives (
			set_name TEXT NOT NULL,
			output_id TEXT NOT NULL,
			accession TEXT NOT NULL,
			path TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			source_url TEXT,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (set_name, output_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_natives_accession ON natives(accession)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts one retrieved native. Re-running a batch over the same
// manifest replaces the existing rows, matching the overwrite semantics of
// the downloads themselves.
func (s *Store) Record(ctx context.Context, rec types.NativeRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO natives (set_name, output_id, accession, path, size_bytes, source_url, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(set_name, output_id) DO UPDATE SET
			accession = excluded.accession,
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			source_url = excluded.source_url,
			fetched_at = excluded.fetched_at`,
		rec.Set, rec.OutputID, rec.Accession, rec.Path, rec.SizeBytes,
		rec.SourceURL, rec.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording %s/%s: %w", rec.Set, rec.OutputID, err)
	}
	return nil
}

// List returns catalog rows ordered by set and output id. An empty setName
// returns every set.
func (s *Store) List(ctx context.Context, setName string) ([]types.NativeRecord, error) {
	query := `SELECT set_name, output_id, accession, path, size_bytes, source_url, fetched_at
		FROM natives`
	args := []any{}
	if setName != "" {
		query += ` WHERE set_name = ?`
		args = append(args, setName)
	}
	query += ` ORDER BY set_name, output_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var recs []types.NativeRecord
	for rows.Next() {
		var rec types.NativeRecord
		var fetchedAt string
		if err := rows.Scan(&rec.Set, &rec.OutputID, &rec.Accession, &rec.Path,
			&rec.SizeBytes, &rec.SourceURL, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			rec.FetchedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
