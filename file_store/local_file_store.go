package file_store

import (
	"io"
	"os"
	"path/filepath"
)

// LocalUploadStore writes uploads to a directory on disk, for development.
// The server mounts the directory under /uploads.
type LocalUploadStore struct {
	dir string
}

func NewLocalUploadStore(dir string) (*LocalUploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalUploadStore{dir: dir}, nil
}

func (s *LocalUploadStore) Store(r io.Reader, fileName string) (string, error) {
	key := keyFromFileName(fileName)
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalUploadStore) GetUrlFromKey(key string) string {
	return "/uploads/" + key
}

func (s *LocalUploadStore) CleanUp() {
	// keep files around between restarts
}
