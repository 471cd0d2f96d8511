//go:build windows

package hooks

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// isExecutable decides by extension since Windows has no execute bit.
// PATHEXT extends the built-in list.
func isExecutable(name string, _ fs.FileInfo) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	exts := []string{".exe", ".com", ".bat", ".cmd"}
	if pathext := os.Getenv("PATHEXT"); pathext != "" {
		exts = append(exts, strings.Split(strings.ToLower(pathext), ";")...)
	}
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
