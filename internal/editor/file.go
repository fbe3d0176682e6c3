package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"runpad/internal/lang"
)

// Save writes text to path and returns the path actually written. A path
// without an extension gets the language's extension, ".txt" when the
// language is unknown.
func Save(path string, language lang.Language, text string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("save: empty path")
	}
	if filepath.Ext(path) == "" {
		path += language.Extension()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("unable to save the file: %w", err)
	}
	return path, nil
}

// Open reads a file into a string.
func Open(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to open the file: %w", err)
	}
	return string(data), nil
}
