// =============================================================================
// Metadata Generator - File Management Utilities
// =============================================================================
//
// This module provides the filesystem helpers shared by the commands:
//   - Existence checks for input files and output directories
//   - Atomic file writes (temp file + rename)
//   - Recursive file discovery with ** glob patterns
//
// =============================================================================

package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureDir creates a directory and its parents if needed.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so readers never see a partially written file.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The complete file content.
//
// RETURNS:
//   - An error if the temporary file cannot be written or renamed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// DISCOVERY
// =============================================================================

// FindFiles returns the regular files under root matching a doublestar
// pattern such as "**/*.field-meta.xml", sorted by path.
func FindFiles(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(files)
	return files, nil
}

// SubDirs returns the names of the directories directly under root, sorted.
func SubDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() || e.Type()&fs.ModeSymlink != 0 && DirExists(filepath.Join(root, e.Name())) {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}
