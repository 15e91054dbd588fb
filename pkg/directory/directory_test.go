package directory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeIDs(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write ids: %v", err)
	}
	return path
}

func TestDirectory_LoadAndContains(t *testing.T) {
	path := writeIDs(t, "# known authors", "octo-cat", "", "Ops_Bot=2", "  inbox01  ")
	d, err := New(path)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	defer d.Close()

	tests := []struct {
		id       string
		expected bool
	}{
		{"octo-cat", true},
		{"OCTO-CAT", true},
		{"ops_bot=2", true},
		{"inbox01", true},
		{"# known authors", false},
		{"octo", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := d.Contains(tt.id); got != tt.expected {
			t.Errorf("Contains(%q) = %v, want %v", tt.id, got, tt.expected)
		}
	}

	if d.Count() != 3 {
		t.Errorf("Count() = %d, want 3", d.Count())
	}

	if _, err := os.Stat(strings.TrimSuffix(path, ".txt") + ".fst"); err != nil {
		t.Errorf("Expected FST file next to %s: %v", path, err)
	}
}

func TestDirectory_AddRemovePersist(t *testing.T) {
	path := writeIDs(t, "alice")
	d, err := New(path)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}

	if err := d.Add("Bob", "carol"); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if !d.Contains("bob") || !d.Contains("CAROL") {
		t.Error("Expected added identifiers to be found")
	}

	if err := d.Remove("ALICE"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if d.Contains("alice") {
		t.Error("Expected removed identifier to be gone")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read ids: %v", err)
	}
	if string(data) != "bob\ncarol\n" {
		t.Errorf("Persisted ids = %q, want %q", data, "bob\ncarol\n")
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("Failed to reopen directory: %v", err)
	}
	defer reopened.Close()
	if !reopened.Contains("bob") || reopened.Contains("alice") {
		t.Error("Reopened directory does not reflect persisted changes")
	}
}

func TestDirectory_StaleFSTIsRebuilt(t *testing.T) {
	path := writeIDs(t, "alice")
	d, err := New(path)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	d.Close()

	// Editing the text file by hand leaves the old FST behind.
	if err := os.WriteFile(path, []byte("alice\ndave\n"), 0o644); err != nil {
		t.Fatalf("Failed to write ids: %v", err)
	}

	d, err = New(path)
	if err != nil {
		t.Fatalf("Failed to reload directory: %v", err)
	}
	defer d.Close()
	if !d.Contains("dave") {
		t.Error("Expected stale FST to be rebuilt from the text file")
	}
}

func TestNewFromList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	d, err := NewFromList(path, []string{"zed", "Amy", "amy", " "})
	if err != nil {
		t.Fatalf("NewFromList error: %v", err)
	}
	defer d.Close()

	if d.Count() != 2 {
		t.Errorf("Count() = %d, want 2", d.Count())
	}
	if !d.Contains("AMY") || !d.Contains("zed") {
		t.Error("Expected listed identifiers to be found")
	}
	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
}

func TestDirectory_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("New(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestDirectory_Closed(t *testing.T) {
	d, err := New(writeIDs(t, "alice"))
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	d.Close()

	if d.Contains("alice") {
		t.Error("Closed directory should not report identifiers")
	}
	if err := d.Add("bob"); !errors.Is(err, ErrClosed) {
		t.Errorf("Add on closed directory error = %v, want ErrClosed", err)
	}
	if err := d.Rebuild(); !errors.Is(err, ErrClosed) {
		t.Errorf("Rebuild on closed directory error = %v, want ErrClosed", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
}
