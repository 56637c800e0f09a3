package workflow

import (
	"errors"
	"io/fs"
	"os"

	"sara-cli/internal/patch"
)

// FileStorage is the real Storage: synchronous whole-file reads and
// writes. Failures surface as *patch.Error so the workflow can build
// differentiated feedback.
type FileStorage struct{}

func (FileStorage) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &patch.Error{Kind: patch.ErrNotFound, Path: path, Err: err}
		}
		return "", &patch.Error{Kind: patch.ErrIO, Path: path, Err: err}
	}
	return string(data), nil
}

// WriteFile replaces the file as a whole, keeping its existing permission
// bits. os.WriteFile closes the handle on every exit path, so a failed
// write never leaves a dangling open file.
func (FileStorage) WriteFile(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return &patch.Error{Kind: patch.ErrIO, Path: path, Err: err}
	}
	return nil
}
