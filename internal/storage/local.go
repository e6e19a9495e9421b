package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/wakostech/blog-backend/domain"
)

const refPrefix = "/uploads/"

// LocalStore keeps uploaded files on the local filesystem and hands out
// references under /uploads/. External URLs and data URIs are never
// considered managed, so they are never deleted.
type LocalStore struct {
	dir string
}

var _ domain.FileStore = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the file under a random name, keeping only the original
// extension. Returns the serving reference.
func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	stored := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, stored), data, 0o644); err != nil {
		return "", err
	}
	return refPrefix + stored, nil
}

// Delete removes a managed file. Unmanaged references are ignored.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if !s.Managed(ref) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(ref, refPrefix))
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Managed reports whether ref points at a file this store owns.
func (s *LocalStore) Managed(ref string) bool {
	return strings.HasPrefix(ref, refPrefix)
}

// Dir exposes the backing directory for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
