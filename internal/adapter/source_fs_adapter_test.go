package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.go"), "package main\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.go"), "package nested\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.go")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "main.go")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.go"), "package main\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.go")
		writeTestFile(t, child, "package nested\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file when recursive")
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	content := "package main\n" + "func main() {}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_GoFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "ring.go"), "package ring\n")
	writeTestFile(t, filepath.Join(root, "ring_test.go"), "package ring\n")
	writeTestFile(t, filepath.Join(root, "notes.txt"), "not go\n")

	nested := filepath.Join(root, "lattice")
	mustMkdir(t, nested)
	writeTestFile(t, filepath.Join(nested, "lattice.go"), "package lattice\n")
	writeTestFile(t, filepath.Join(nested, "generated.pb.go"), "package lattice\n")

	vendor := filepath.Join(root, "vendor")
	mustMkdir(t, vendor)
	writeTestFile(t, filepath.Join(vendor, "dep.go"), "package dep\n")

	adapter := NewLocalSourceFSAdapter()

	t.Run("recursive pattern", func(t *testing.T) {
		files, err := adapter.GoFiles([]m.Path{m.Path(root + "/...")}, nil)
		if err != nil {
			t.Fatalf("GoFiles() error = %v", err)
		}

		got := filePaths(files)
		want := []string{
			filepath.Join(nested, "generated.pb.go"),
			filepath.Join(nested, "lattice.go"),
			filepath.Join(root, "ring.go"),
		}

		if len(got) != len(want) {
			t.Fatalf("GoFiles() = %v, want %v", got, want)
		}

		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("GoFiles()[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("overlapping patterns list a file once", func(t *testing.T) {
		files, err := adapter.GoFiles([]m.Path{m.Path(root + "/..."), m.Path(filepath.Join(root, "ring.go"))}, nil)
		if err != nil {
			t.Fatalf("GoFiles() error = %v", err)
		}

		if len(files) != 3 {
			t.Fatalf("GoFiles() = %v, want 3 files", filePaths(files))
		}
	})

	t.Run("directory without dots is not recursive", func(t *testing.T) {
		files, err := adapter.GoFiles([]m.Path{m.Path(root)}, nil)
		if err != nil {
			t.Fatalf("GoFiles() error = %v", err)
		}

		if got := filePaths(files); len(got) != 1 || got[0] != filepath.Join(root, "ring.go") {
			t.Fatalf("GoFiles() = %v, want only ring.go", got)
		}
	})

	t.Run("exclude globs", func(t *testing.T) {
		files, err := adapter.GoFiles([]m.Path{m.Path(root + "/...")}, []string{"*.pb.go", "**/ring.go"})
		if err != nil {
			t.Fatalf("GoFiles() error = %v", err)
		}

		if got := filePaths(files); len(got) != 1 || got[0] != filepath.Join(nested, "lattice.go") {
			t.Fatalf("GoFiles() = %v, want only lattice.go", got)
		}
	})

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(nested, "lattice.go")

		files, err := adapter.GoFiles([]m.Path{m.Path(path)}, nil)
		if err != nil {
			t.Fatalf("GoFiles() error = %v", err)
		}

		if got := filePaths(files); len(got) != 1 || got[0] != path {
			t.Fatalf("GoFiles() = %v, want %s", got, path)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := adapter.GoFiles([]m.Path{m.Path(filepath.Join(root, "missing"))}, nil); err == nil {
			t.Fatalf("GoFiles() expected error for a missing path")
		}
	})

	t.Run("invalid exclude", func(t *testing.T) {
		if _, err := adapter.GoFiles([]m.Path{m.Path(root)}, []string{"[unterminated"}); err == nil {
			t.Fatalf("GoFiles() expected error for an invalid pattern")
		}
	})
}

func filePaths(files []m.File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = string(f.Path)
	}

	return paths
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
