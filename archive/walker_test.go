package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	fixzip "github.com/hidez8891/zip"
)

type zipEntry struct {
	name, content string
}

// makeArchive writes zip package with entries in the given order.
func makeArchive(t *testing.T, dir string, entries ...zipEntry) string {
	t.Helper()

	name := filepath.Join(dir, "pack.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return name
}

func themePack(t *testing.T) string {
	return makeArchive(t, t.TempDir(),
		zipEntry{"theme/theme.json", `{"version": 3}`},
		zipEntry{"theme/styles/dark.json", `{"version": 3, "title": "Dark"}`},
		zipEntry{"theme/styles/light.json", `{"version": 3, "title": "Light"}`},
		zipEntry{"blocks.yaml", "blocks: []"},
	)
}

func TestWalk(t *testing.T) {
	pack := themePack(t)

	tests := []struct {
		pattern string
		want    []string
	}{
		{"theme/styles/", []string{"theme/styles/dark.json", "theme/styles/light.json"}},
		{"theme/", []string{"theme/theme.json", "theme/styles/dark.json", "theme/styles/light.json"}},
		{"", []string{"theme/theme.json", "theme/styles/dark.json", "theme/styles/light.json", "blocks.yaml"}},
		{"Theme/", nil},
		{"nonexistent/", nil},
	}

	for _, tt := range tests {
		t.Run("pattern "+tt.pattern, func(t *testing.T) {
			var visited []string
			err := Walk(pack, tt.pattern, func(archive string, file *fixzip.File) error {
				if archive != pack {
					t.Errorf("archive = %s, want %s", archive, pack)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	pack := themePack(t)

	var visited int
	stopErr := errors.New("stop walking")
	err := Walk(pack, "", func(archive string, file *fixzip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})

	if err != stopErr {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_SkipsDirectories(t *testing.T) {
	name := filepath.Join(t.TempDir(), "dirs.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	hdr := &zip.FileHeader{Name: "styles/"}
	hdr.SetMode(os.ModeDir | 0755)
	if _, err := w.CreateHeader(hdr); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	fw, err := w.Create("styles/dark.json")
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	fw.Write([]byte("{}"))
	w.Close()
	f.Close()

	var visited []string
	if err := Walk(name, "styles/", func(_ string, file *fixzip.File) error {
		visited = append(visited, file.Name)
		return nil
	}); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if !slices.Equal(visited, []string{"styles/dark.json"}) {
		t.Errorf("visited %v", visited)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	noop := func(string, *fixzip.File) error { return nil }

	if err := Walk("/nonexistent/file.zip", "", noop); err == nil {
		t.Error("Expected error for nonexistent file")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.zip")
	if err := os.WriteFile(invalid, []byte("not a zip file"), 0644); err != nil {
		t.Fatalf("Failed to create invalid zip: %v", err)
	}
	if err := Walk(invalid, "", noop); err == nil {
		t.Error("Expected error for invalid zip file")
	}
}

func TestWalk_UnsafePath(t *testing.T) {
	pack := makeArchive(t, t.TempDir(),
		zipEntry{"theme.json", "{}"},
		zipEntry{"../../etc/theme.json", "{}"},
	)
	err := Walk(pack, "", func(string, *fixzip.File) error { return nil })
	if err == nil {
		t.Error("Expected error for path traversal entry")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"theme.json", true},
		{"styles/dark.json", true},
		{"styles/..dark.json", true},
		{"/etc/passwd", false},
		{`\windows\theme.json`, false},
		{"styles/../../theme.json", false},
		{"..", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
