// Package data provides the report store implementations behind the
// core.ReportStore port: a local directory of one file per key, an in-memory
// map, Redis, and PostgreSQL.
package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivalradar/rivalradar/internal/core"
)

// Disallowed filesystem characters are replaced with fixed textual escapes so
// any store key maps to a legal filename on every platform. Round-tripping
// through decodeKey assumes the raw key never forms an escape sequence such as
// a literal "_c_"; keys here are always "report:<kind>:<uuid>", which cannot.
var keyEscapes = []struct{ raw, escaped string }{
	{"_", "_u_"},
	{":", "_c_"},
	{"/", "_s_"},
	{"\\", "_b_"},
	{"*", "_a_"},
	{"?", "_q_"},
	{"\"", "_d_"},
	{"<", "_l_"},
	{">", "_g_"},
	{"|", "_p_"},
}

const fileExt = ".json"

// FileStore persists each key as one file under a local directory.
type FileStore struct {
	dir string
}

var _ core.ReportStore = (*FileStore)(nil)

// NewFileStore creates the directory if needed and returns a file-backed store.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Set writes the value to the key's file, replacing any previous content.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Get reads the key's file; a missing file is core.ErrNotFound.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("read key %q: %w", key, err)
	}
	return data, nil
}

// Delete removes the key's file. Returns true if it existed.
func (s *FileStore) Delete(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}
	err := os.Remove(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete key %q: %w", key, err)
	}
	return true, nil
}

// ListKeys decodes every filename in the directory back to its key and
// returns those starting with prefix.
func (s *FileStore) ListKeys(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key := decodeKey(strings.TrimSuffix(name, fileExt))
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Health verifies the directory is still accessible.
func (s *FileStore) Health(_ context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, encodeKey(key)+fileExt)
}

func encodeKey(key string) string {
	for _, e := range keyEscapes {
		key = strings.ReplaceAll(key, e.raw, e.escaped)
	}
	return key
}

func decodeKey(name string) string {
	// Reverse order so the underscore escape is decoded last.
	for i := len(keyEscapes) - 1; i >= 0; i-- {
		name = strings.ReplaceAll(name, keyEscapes[i].escaped, keyEscapes[i].raw)
	}
	return name
}
