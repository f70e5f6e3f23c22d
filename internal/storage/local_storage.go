package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps document bytes on disk under a single upload directory.
// Used when S3 is not configured.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes the stream to disk under the given stored name and returns the
// number of bytes written.
func (l *LocalStorage) Save(storedName string, src io.Reader) (int64, error) {
	dst, err := os.Create(l.Path(storedName))
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return written, nil
}

// Path returns the on-disk path for a stored name. The stored name is
// uuid-generated by the service, never user input.
func (l *LocalStorage) Path(storedName string) string {
	return filepath.Join(l.dir, storedName)
}

// Delete removes the stored file; a missing file is not an error
func (l *LocalStorage) Delete(storedName string) error {
	err := os.Remove(l.Path(storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
