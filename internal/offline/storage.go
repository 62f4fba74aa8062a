// Package offline buffers symptom-log submissions that could not reach the
// log store and replays them once connectivity returns.
package offline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage is the durable key-value port the queue persists through. Values
// survive process restarts.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set durably replaces the value under key.
	Set(key string, value []byte) error
}

// FileStorage keeps one JSON file per key under a data directory. Writes go
// through a temp file and an atomic rename, so a crash leaves either the old
// value or the new one, never a torn file.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (storage *FileStorage) Get(key string) ([]byte, bool, error) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	content, err := os.ReadFile(storage.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return content, true, nil
}

func (storage *FileStorage) Set(key string, value []byte) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	target := storage.path(key)
	temp := target + ".tmp"
	if err := os.WriteFile(temp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(temp, target); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (storage *FileStorage) path(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(storage.dir, sanitized+".json")
}
