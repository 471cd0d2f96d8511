// Package storage provides atomic JSON file operations and advisory file
// locking for githooks state kept under the repository's git directory.
package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// StateDirName is the directory under the git dir that holds githooks state.
const StateDirName = "githooks"

// StateDir returns the githooks state directory for a git directory.
func StateDir(gitDir string) string {
	return filepath.Join(gitDir, StateDirName)
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from the specified path into dest.
// Returns an error wrapping os.ErrNotExist if the file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Update runs a read-modify-write of the JSON file at path while holding
// path+".lock". modify receives the current content: the zero value when
// the file is missing or does not decode. The result is saved atomically.
// Nothing is written when modify returns an error.
func Update[T any](path string, modify func(*T) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := NewFileLock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	var v T
	if err := LoadJSON(path, &v); err != nil {
		var perr *fs.PathError
		if !errors.Is(err, fs.ErrNotExist) && errors.As(err, &perr) {
			return err
		}
		// Missing or corrupt: start fresh.
		v = *new(T)
	}

	if err := modify(&v); err != nil {
		return err
	}
	return SaveJSON(path, &v)
}
