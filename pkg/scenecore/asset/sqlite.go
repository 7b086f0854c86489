package asset

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pierrec/lz4"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore is a single-file asset bundle backed by SQLite.
// Entries may be stored lz4-compressed; Read transparently
// decompresses. It is suitable for shipping a packed asset set with a
// single-process engine.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (creating if needed) an asset bundle.
// The path should be a file path (e.g., "./assets.bundle") or
// ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS assets (
			name TEXT NOT NULL PRIMARY KEY,
			compressed INTEGER NOT NULL,
			size INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put stores an asset, overwriting any previous entry. When compress
// is true the blob is lz4-compressed on disk; size always records the
// uncompressed length.
func (s *SQLiteStore) Put(name string, data []byte, compress bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	blob := data
	if compress {
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("compress asset %s: %w", name, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress asset %s: %w", name, err)
		}
		blob = buf.Bytes()
	}

	_, err := s.db.Exec(`
		INSERT INTO assets (name, compressed, size, created_at, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			compressed = excluded.compressed,
			size = excluded.size,
			created_at = excluded.created_at,
			data = excluded.data
	`, name, compress, int64(len(data)), time.Now().UTC().Format(time.RFC3339Nano), blob)

	if err != nil {
		return fmt.Errorf("put asset %s: %w", name, err)
	}
	return nil
}

// Read implements Store.
func (s *SQLiteStore) Read(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var compressed bool
	var blob []byte
	err := s.db.QueryRow(`
		SELECT compressed, data FROM assets WHERE name = ?
	`, name).Scan(&compressed, &blob)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}

	if !compressed {
		return blob, nil
	}

	zr := lz4.NewReader(bytes.NewReader(blob))
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress asset %s: %w", name, err)
	}
	return data, nil
}

// List returns metadata for every asset in the bundle, ordered by
// name.
func (s *SQLiteStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT name, size, compressed FROM assets ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.Name, &info.Size, &info.Compressed); err != nil {
			return nil, fmt.Errorf("scan asset info: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}

	return infos, nil
}

// Delete removes an asset. Returns nil if the asset doesn't exist.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM assets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", name, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
