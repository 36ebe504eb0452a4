// Package adapter contains the infrastructure adapters of the gentest CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// SourceFSAdapter hides the filesystem from the workflow so it can be tested
// without touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root. When recursive is false only the root directory is
	// visited.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk.
	ReadFile(path m.Path) ([]byte, error)

	// GoFiles expands Go-style path patterns into the non-test Go files they
	// name, minus those matching any exclude glob.
	GoFiles(patterns []m.Path, exclude []string) ([]m.File, error)
}

// FilepathWalkFunc mirrors the callback shape of filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || skippedDir(info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// GoFiles resolves "./...", "dir/...", directories and single files.
func (a *LocalSourceFSAdapter) GoFiles(patterns []m.Path, exclude []string) ([]m.File, error) {
	if len(patterns) == 0 {
		patterns = []m.Path{"./..."}
	}

	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	seen := make(map[string]bool)

	var files []m.File

	for _, pattern := range patterns {
		root, recursive := splitPattern(string(pattern))

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", pattern, err)
		}

		if !info.IsDir() {
			recursive = false
		}

		err = a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !isSourceFile(path) || seen[path] || excluded(path, exclude) {
				return nil
			}

			seen[path] = true
			files = append(files, m.File{Path: m.Path(path)})

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if root, ok := strings.CutSuffix(pattern, "/..."); ok {
		if root == "" {
			root = "."
		}

		return root, true
	}

	return pattern, false
}

func isSourceFile(path string) bool {
	return filepath.Ext(path) == ".go" && !strings.HasSuffix(path, "_test.go")
}

func skippedDir(name string) bool {
	switch name {
	case ".git", "vendor", "testdata", "node_modules":
		return true
	}

	return strings.HasPrefix(name, "_") || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func excluded(path string, patterns []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}

		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}

	return false
}
