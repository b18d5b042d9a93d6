package storage

import "context"

// Provider is the narrow contract the upload pipeline holds on the file
// collaborator: persist bytes under a name, remove them by the handle
// Save returned. The handle is opaque to callers and stored verbatim on
// the photo row.
type Provider interface {
	// Save persists data under fileName and returns the canonical storage
	// path for the written bytes.
	Save(ctx context.Context, fileName string, data []byte) (string, error)

	// Delete removes the bytes previously written under path.
	Delete(ctx context.Context, path string) error

	// Exists reports whether path currently denotes stored bytes.
	Exists(ctx context.Context, path string) (bool, error)

	// Health checks that the backing store is reachable.
	Health(ctx context.Context) error

	// Name returns the provider name.
	Name() string
}
