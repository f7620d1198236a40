// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists analysis responses in a local SQLite database so
// repeated batch runs do not resubmit identical documents.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "responses.db"

// Store is a content-addressed cache of raw analysis response bodies keyed
// by request hash.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		request_hash TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Key derives the cache key for a request: the hex SHA-256 of the endpoint
// and the encoded form parameters. Values are encoded sorted by key, so
// equivalent requests hash identically.
func Key(endpoint string, params url.Values) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write([]byte(params.Encode()))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response body for key, or ok=false on a miss.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM responses WHERE request_hash = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}
	return body, true, nil
}

// Put stores the response body under key, replacing any previous entry.
func (s *Store) Put(key string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO responses (request_hash, body, created_at) VALUES (?, ?, ?)`,
		key, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries older than maxAge and returns the number removed.
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM responses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return n, nil
}
