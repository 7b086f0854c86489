// Package asset provides read access to named asset blobs for loader
// workers, with in-memory, directory and SQLite-bundle backends.
package asset

import (
	"errors"
)

// Store reads named asset blobs. A Store instance is handed to a
// loader worker through its Session and may be thread-affine; the
// SQLite and memory stores here are additionally safe for concurrent
// use.
type Store interface {
	// Read returns the bytes of the named asset.
	// Returns ErrNotFound if the asset doesn't exist.
	Read(name string) ([]byte, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides asset metadata without loading the blob.
type Info struct {
	Name       string
	Size       int64
	Compressed bool
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the named asset doesn't exist.
	ErrNotFound = errors.New("asset not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("asset store closed")
)
