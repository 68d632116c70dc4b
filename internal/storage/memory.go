package storage

import (
	"context"
	"sync"
)

// MemoryBackend is an in-memory stand-in for tests and local
// development without a bucket. URLs are fake but stable.
type MemoryBackend struct {
	mu     sync.Mutex
	images map[string]string
}

// NewMemoryBackend creates a new in-memory cover image backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{images: make(map[string]string)}
}

func (b *MemoryBackend) GenerateUploadURL(ctx context.Context, imageID, contentType string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.images[imageID] = contentType
	return "memory://upload/" + imageID, nil
}

func (b *MemoryBackend) GetURL(ctx context.Context, imageID string) (string, error) {
	return "memory://covers/" + imageID, nil
}

func (b *MemoryBackend) Delete(ctx context.Context, imageID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.images, imageID)
	return nil
}
