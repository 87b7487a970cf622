// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
	"time"
)

// FileStorage keeps generated stock reports and hands out download links
type FileStorage interface {
	// Upload stores data under key and returns its location
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	// GetPresignedURL returns a link to key valid for duration
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
}
