package imagestore

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes images under a local directory served by the static file
// handler at /images.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, dataURI string) (string, error) {
	data, _, ext, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return path.Join("/images", name), nil
}
