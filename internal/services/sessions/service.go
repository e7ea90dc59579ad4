package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// Limits caps the resources a single session may hold
type Limits struct {
	// MaxImages is the maximum number of images per session
	MaxImages int
	// MaxImageBytes is the maximum size of a single uploaded image
	MaxImageBytes int64
}

// Service implements the Registry interface with an in-memory session table
// and a background sweeper that evicts idle sessions
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session

	limits          Limits
	ttl             time.Duration
	cleanupInterval time.Duration
	extract         session.ExtractFunc

	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time
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

// WithCleanupInterval sets how often the idle sweeper runs
func WithCleanupInterval(interval time.Duration) ServiceOption {
	return func(s *Service) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewService creates a new session registry. The extract function is used to
// pull capture timestamps out of uploaded image bytes.
func NewService(limits Limits, ttl time.Duration, extract session.ExtractFunc, opts ...ServiceOption) *Service {
	s := &Service{
		sessions:        make(map[string]*session.Session),
		limits:          limits,
		ttl:             ttl,
		cleanupInterval: 10 * time.Minute,
		extract:         extract,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the upload against the configured limits, builds a new
// session around the images, and registers it under a fresh ID
func (s *Service) Create(ctx context.Context, uploads []models.ImageUpload) (*session.Session, error) {
	if s.limits.MaxImages > 0 && len(uploads) > s.limits.MaxImages {
		return nil, &TooManyImagesError{Count: len(uploads), Max: s.limits.MaxImages}
	}
	if s.limits.MaxImageBytes > 0 {
		for _, upload := range uploads {
			if int64(len(upload.Data)) > s.limits.MaxImageBytes {
				return nil, &ImageTooLargeError{
					Filename: upload.Filename,
					Size:     int64(len(upload.Data)),
					Max:      s.limits.MaxImageBytes,
				}
			}
		}
	}

	id := uuid.New().String()
	sess, err := session.New(id, uploads, s.extract)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	log.Printf("[INFO] Created session %s with %d images (%d live)", id, len(uploads), count)
	return sess, nil
}

// Get returns the session with the given ID
func (s *Service) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session from the registry
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	log.Printf("[INFO] Deleted session %s", id)
	return nil
}

// Count returns the number of live sessions
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Start begins the idle session sweeper
func (s *Service) Start(ctx context.Context) {
	if s.ttl <= 0 {
		log.Println("[INFO] Session TTL disabled, idle sweeper not started")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if evicted := s.evictIdle(s.now()); evicted > 0 {
					log.Printf("[INFO] Evicted %d idle session(s)", evicted)
				}
			case <-ctx.Done():
				log.Println("[INFO] Session sweeper stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Session sweeper started (interval: %v, TTL: %v)", s.cleanupInterval, s.ttl)
}

// Stop stops the idle session sweeper
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// evictIdle removes sessions that have been idle longer than the TTL and
// returns how many were dropped
func (s *Service) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastAccess()) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
