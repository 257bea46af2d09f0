package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"currency-cache/internal/domain/model"
	"currency-cache/pkg/logger"
)

// DiskStore keeps one JSON snapshot file per cache key in a single
// directory. It is the only writer of that directory.
type DiskStore struct {
	dir string
	log *logger.Logger
}

// NewDiskStore creates dir if it does not exist.
func NewDiskStore(dir string, log *logger.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &model.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &DiskStore{dir: dir, log: log}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// Path returns the file backing name. Names that are not plain file names
// are returned unchanged.
func (s *DiskStore) Path(name string) string {
	path, err := s.path(name)
	if err != nil {
		return name
	}
	return path
}

func (s *DiskStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid snapshot name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

func (s *DiskStore) Load(name string) ([]byte, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, false, &model.StorageError{Op: "read", Path: name, Err: err}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("Snapshot miss", "path", path)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &model.StorageError{Op: "read", Path: path, Err: err}
	}

	s.log.Debug("Snapshot hit", "path", path, "bytes", len(data))
	return data, true, nil
}

// Save writes data to a temporary file in the same directory and renames it
// over the target, so a reader sees either no file or the complete one.
func (s *DiskStore) Save(name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return &model.StorageError{Op: "write", Path: name, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return &model.StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &model.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &model.StorageError{Op: "sync", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &model.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &model.StorageError{Op: "chmod", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &model.StorageError{Op: "rename", Path: path, Err: err}
	}

	s.log.Info("Snapshot written", "path", path, "bytes", len(data))
	return nil
}
