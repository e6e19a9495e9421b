package domain

import "context"

// FileStore is the file/image storage collaborator. The core only stores
// and passes through reference strings; three shapes are distinguished:
// absolute URLs, inline data URIs and storage-relative paths. Only the
// last kind is "managed" and ever deleted.
type FileStore interface {
	// Save stores the bytes under a fresh name derived from the hint and
	// returns a storage-relative reference.
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Delete removes the resource behind a managed reference. Unmanaged
	// references (URLs, data URIs) are ignored.
	Delete(ctx context.Context, ref string) error

	// Managed reports whether the reference points into this store.
	Managed(ref string) bool
}
