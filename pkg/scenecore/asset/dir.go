package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DirStore reads assets from files under a root directory. Asset
// names are slash-separated relative paths; names that escape the
// root are rejected.
type DirStore struct {
	root string

	mu     sync.RWMutex
	closed bool
}

// NewDirStore creates a store rooted at dir. The directory must
// already exist.
func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat asset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", dir)
	}
	return &DirStore{root: dir}, nil
}

// Read implements Store.
func (d *DirStore) Read(name string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return nil, ErrStoreClosed
	}

	path, err := d.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", name, err)
	}
	return data, nil
}

// resolve maps an asset name to a path inside the root, rejecting
// traversal outside it.
func (d *DirStore) resolve(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid asset name %q: %w", name, ErrNotFound)
	}
	return filepath.Join(d.root, clean), nil
}

// Close implements Store.
func (d *DirStore) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
