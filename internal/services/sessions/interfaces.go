package sessions

import (
	"context"

	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// Registry defines the interface for managing the lifetime of annotation
// sessions. Each session owns its uploaded image collection and is evicted
// after sitting idle longer than the configured TTL.
type Registry interface {
	// Create builds a new session from the uploaded images and registers it
	Create(ctx context.Context, uploads []models.ImageUpload) (*session.Session, error)

	// Get returns the session with the given ID
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete removes a session and releases its images
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions
	Count() int
}
