package editor

import (
	"os"
	"path/filepath"
	"testing"

	"runpad/internal/lang"
)

func TestSaveAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name     string
		language lang.Language
		want     string
	}{
		{"hello", lang.Python, "hello.py"},
		{"main", lang.Cpp, "main.cpp"},
		{"notes", lang.Unknown, "notes.txt"},
		{"keep.md", lang.Java, "keep.md"},
	}
	for _, tc := range cases {
		got, err := Save(filepath.Join(dir, tc.name), tc.language, "body")
		if err != nil {
			t.Fatalf("Save(%s) returned error: %v", tc.name, err)
		}
		if filepath.Base(got) != tc.want {
			t.Fatalf("Save(%s) wrote %s, want %s", tc.name, filepath.Base(got), tc.want)
		}
		data, err := os.ReadFile(got)
		if err != nil || string(data) != "body" {
			t.Fatalf("unexpected contents %q (%v)", data, err)
		}
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prog.c")
	if _, err := Save(path, lang.C, "int main(){}"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	text, err := Open(path)
	if err != nil || text != "int main(){}" {
		t.Fatalf("Open returned %q, %v", text, err)
	}
}

func TestSaveAndOpenErrors(t *testing.T) {
	if _, err := Save("", lang.Python, "x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.py")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
