package artefact

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExists_MissingFile(t *testing.T) {
	if Exists(filepath.Join(t.TempDir(), "nope.csv")) {
		t.Errorf("Exists() = true for missing file")
	}
}

func TestExists_EmptyFileIsNotConsideredPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if Exists(path) {
		t.Errorf("Exists() = true for zero-length file")
	}
}

func TestWriteOnce_ShortCircuitsWhenPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	wrote, err := WriteOnce(path, []byte("first"))
	if err != nil || !wrote {
		t.Fatalf("first WriteOnce() = (%v, %v), want (true, nil)", wrote, err)
	}

	wrote, err = WriteOnce(path, []byte("second"))
	if err != nil || wrote {
		t.Fatalf("second WriteOnce() = (%v, %v), want (false, nil)", wrote, err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "first" {
		t.Errorf("content = %q, want original %q preserved", content, "first")
	}
}

func TestHashBytes_Deterministic(t *testing.T) {
	a := HashBytes([]byte("same input"))
	b := HashBytes([]byte("same input"))
	if a != b {
		t.Errorf("HashBytes() not deterministic: %q != %q", a, b)
	}
	if a == HashBytes([]byte("different input")) {
		t.Errorf("HashBytes() collided on different inputs")
	}
}

func TestHashFile_MatchesHashBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	data := []byte("dataset contents")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != HashBytes(data) {
		t.Errorf("HashFile() = %q, want %q", got, HashBytes(data))
	}
}

func TestEnsurePlaceholder_CreatesOnceAndDoesNotClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AFMethod_refactored.csv")
	if err := EnsurePlaceholder(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("placeholder not created: %v", err)
	}

	if err := os.WriteFile(path, []byte("hand-edited"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsurePlaceholder(path); err != nil {
		t.Fatal(err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "hand-edited" {
		t.Errorf("EnsurePlaceholder() clobbered existing content: %q", content)
	}
}
