package storage

import "context"

// Backend abstracts where cover images live. The document row only
// stores the opaque image ID; handing out URLs and deleting blobs is
// the backend's business.
type Backend interface {
	// GenerateUploadURL returns a presigned URL the client PUTs the
	// image bytes to directly, keeping image payloads off this server.
	GenerateUploadURL(ctx context.Context, imageID, contentType string) (string, error)

	// GetURL returns a URL serving the stored image.
	GetURL(ctx context.Context, imageID string) (string, error)

	// Delete removes the stored image. Deleting an unknown ID is not an
	// error.
	Delete(ctx context.Context, imageID string) error
}
