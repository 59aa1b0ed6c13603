package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalSourceStore implements SourceStore over a local directory tree
type LocalSourceStore struct {
	basePath string
}

// NewLocalSourceStore creates a new local source store instance
func NewLocalSourceStore(basePath string) (*LocalSourceStore, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", basePath)
	}

	return &LocalSourceStore{
		basePath: basePath,
	}, nil
}

// List walks the directory tree and returns the relative paths of all
// JSON documents, sorted for a deterministic ingestion order
func (s *LocalSourceStore) List(ctx context.Context) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}

		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list source documents: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Open retrieves a source document from the local tree
func (s *LocalSourceStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source document not found: %s", key)
		}
		return nil, fmt.Errorf("failed to open source document: %w", err)
	}

	return file, nil
}
