package assignments

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/nestwatch/nestwatch-api/internal/models"
)

// Overview summarizes the assignment sheet for the review dashboard
type Overview struct {
	Assignments  []models.Assignment `json:"assignments"`
	StatusCounts map[string]int      `json:"status_counts"`
	Total        int                 `json:"total"`
}

// Service implements AssignmentService with a TTL cache in front of the
// configured source. The assignment sheet changes rarely, so a short cache
// keeps the dashboard from hammering the spreadsheet API.
type Service struct {
	source   Source
	cacheTTL time.Duration

	mu        sync.Mutex
	cached    []models.Assignment
	fetchedAt time.Time
	now       func() time.Time
}

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithClock overrides the time source (used by tests)
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new assignment service backed by the given source
func NewService(source Source, cacheTTL time.Duration, opts ...ServiceOption) *Service {
	s := &Service{
		source:   source,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Overview returns the current assignments with per-status counts
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	assignments, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		models.StatusNotStarted: 0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
	}
	for _, a := range assignments {
		counts[a.Status]++
	}

	return &Overview{
		Assignments:  assignments,
		StatusCounts: counts,
		Total:        len(assignments),
	}, nil
}

// Reviewers returns the unique non-blank reviewer names, sorted
func (s *Service) Reviewers(ctx context.Context) ([]string, error) {
	assignments, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	reviewers := make([]string, 0)
	for _, a := range assignments {
		if a.Reviewer == "" {
			continue
		}
		if _, ok := seen[a.Reviewer]; ok {
			continue
		}
		seen[a.Reviewer] = struct{}{}
		reviewers = append(reviewers, a.Reviewer)
	}
	sort.Strings(reviewers)

	return reviewers, nil
}

// Refresh drops the cached assignment list so the next read hits the source
func (s *Service) Refresh() {
	s.mu.Lock()
	s.cached = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// fetch returns the cached assignments, reloading from the source when the
// cache is empty or stale
func (s *Service) fetch(ctx context.Context) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.cacheTTL {
		return s.cached, nil
	}

	if s.source == nil {
		return nil, fmt.Errorf("no assignment source configured")
	}

	assignments, err := s.source.FetchAssignments(ctx)
	if err != nil {
		// Serve stale data over an error if we have any
		if s.cached != nil {
			log.Printf("[WARN] Assignment fetch failed, serving stale cache: %v", err)
			return s.cached, nil
		}
		return nil, fmt.Errorf("fetching assignments: %w", err)
	}

	s.cached = assignments
	s.fetchedAt = s.now()
	return assignments, nil
}
