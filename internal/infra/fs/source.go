// Package fs supplies question files from a directory on disk.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source reads question files relative to a base directory. Subdirectories
// are included; names use forward slashes relative to the base.
type Source struct {
	baseDir string
}

func NewSource(baseDir string) *Source {
	return &Source{baseDir: baseDir}
}

// ListFiles walks the base directory for .txt and .json files.
func (s *Source) ListFiles(_ context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".json" {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile returns the content of one named file. Names that escape the
// base directory are rejected.
func (s *Source) ReadFile(_ context.Context, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, clean))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
