package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	kind       TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	version    INTEGER NOT NULL,
	spec       TEXT    NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (kind, id)
)`

// OpenSQLite opens (creating if needed) a SQLite database and makes sure
// the assets table exists.
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// SQLiteStore is a Storer kept in one SQLite table, partitioned by kind.
// Every row is read into memory on open; writes go straight through.
type SQLiteStore[T ValidatingSpec] struct {
	db      *sql.DB
	kind    string
	records map[string]T

	mu sync.RWMutex
}

func NewSQLiteStore[T ValidatingSpec](db *sql.DB, kind string) (*SQLiteStore[T], error) {
	s := &SQLiteStore[T]{
		db:      db,
		kind:    kind,
		records: map[string]T{},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, version, spec FROM assets WHERE kind = ?`, s.kind)
	if err != nil {
		return fmt.Errorf("querying %s: %w", s.kind, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id      string
			version uint
			raw     string
		)
		if err := rows.Scan(&id, &version, &raw); err != nil {
			return fmt.Errorf("scanning %s row: %w", s.kind, err)
		}

		asset := &Asset[T]{Version: version, Identifier: id}
		if err := json.Unmarshal([]byte(raw), &asset.Spec); err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrCorrupted, s.kind, id, err)
		}
		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s %s: %w", s.kind, id, err)
		}

		s.records[id] = asset.Spec
	}
	return rows.Err()
}

func (s *SQLiteStore[T]) Save(id string, o T) error {
	asset := newAsset(id, o)
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO assets (kind, id, version, spec, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET
			version = excluded.version,
			spec = excluded.spec,
			updated_at = excluded.updated_at`,
		s.kind, id, asset.Version, string(raw), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("saving %s %s: %w", s.kind, id, err)
	}

	s.records[id] = o
	return nil
}

func (s *SQLiteStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *SQLiteStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

func (s *SQLiteStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM assets WHERE kind = ? AND id = ?`, s.kind, id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", s.kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", s.kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delete(s.records, id)
	return nil
}
