package assignments

import (
	"context"

	"github.com/nestwatch/nestwatch-api/internal/models"
)

// Source defines the interface for fetching camera review assignments from
// the configured store backend
type Source interface {
	FetchAssignments(ctx context.Context) ([]models.Assignment, error)
}

// AssignmentService defines the business logic interface for the assignment
// overview
type AssignmentService interface {
	// Overview returns the current assignments with per-status counts
	Overview(ctx context.Context) (*Overview, error)

	// Reviewers returns the unique non-blank reviewer names, sorted
	Reviewers(ctx context.Context) ([]string, error)

	// Refresh drops the cached assignment list
	Refresh()
}
