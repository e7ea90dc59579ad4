package session

import (
	"context"
	"sync"
	"time"

	"github.com/nestwatch/nestwatch-api/internal/models"
)

// SyncView is the last sync outcome kept for rendering: either a confirmed
// append count or the error the store returned
type SyncView struct {
	Appended int       `json:"appended"`
	SyncedAt time.Time `json:"synced_at"`
	Error    string    `json:"error,omitempty"`
}

// Snapshot is the full renderable state of a session, published to
// subscribers after every mutation
type Snapshot struct {
	SessionID        string              `json:"session_id"`
	ImageCount       int                 `json:"image_count"`
	Current          int                 `json:"current"`
	CurrentFilename  string              `json:"current_filename"`
	CurrentTimestamp string              `json:"current_timestamp,omitempty"`
	Marking          MarkingView         `json:"marking"`
	Fields           Fields              `json:"fields"`
	Annotations      []models.Annotation `json:"annotations"`
	LastSync         *SyncView           `json:"last_sync,omitempty"`
}

// Session owns one reviewer's annotation state: the image collection, the
// navigation cursor, the uncommitted marks, the form fields, and the table of
// committed records. A per-session mutex serializes all user-intent events so
// every transition runs as a discrete, non-overlapping reaction; nothing is
// shared between sessions.
type Session struct {
	id string

	mu         sync.Mutex
	collection *Collection
	cursor     *Cursor
	marking    *Marking
	fields     *Fields
	table      *Table
	lastSync   *SyncView
	lastAccess time.Time

	subscribers map[chan Snapshot]struct{}
	now         func() time.Time
}

// New builds a session over the given uploads. The uploads are sorted by
// filename and assigned dense ordinals; zero uploads is an error.
func New(id string, uploads []models.ImageUpload, extract ExtractFunc) (*Session, error) {
	return newSession(id, uploads, extract, time.Now)
}

func newSession(id string, uploads []models.ImageUpload, extract ExtractFunc, now func() time.Time) (*Session, error) {
	coll, err := NewCollection(uploads, extract)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:          id,
		collection:  coll,
		cursor:      NewCursor(coll.Len()),
		marking:     NewMarking(),
		fields:      NewFields(now()),
		table:       NewTable(),
		lastAccess:  now(),
		subscribers: make(map[chan Snapshot]struct{}),
		now:         now,
	}, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// LastAccess returns the time of the most recent event on this session
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Next advances the cursor one image, clamping at the last
func (s *Session) Next() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cursor.Next()
	return s.publish()
}

// Prev moves the cursor back one image, clamping at the first
func (s *Session) Prev() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.cursor.Prev()
	return s.publish()
}

// Goto jumps the cursor to the given ordinal
func (s *Session) Goto(ordinal int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.cursor.Goto(ordinal); err != nil {
		return Snapshot{}, err
	}
	return s.publish(), nil
}

// ToggleStart sets or clears the sequence start mark at the cursor position
func (s *Session) ToggleStart(on bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.marking.ToggleStart(s.cursor.Current(), on); err != nil {
		return Snapshot{}, err
	}
	return s.publish(), nil
}

// ToggleEnd sets or clears the sequence end mark at the cursor position
func (s *Session) ToggleEnd(on bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.marking.ToggleEnd(s.cursor.Current(), on); err != nil {
		return Snapshot{}, err
	}
	return s.publish(), nil
}

// ToggleSingle sets or clears the single-image observation mark at the cursor
// position
func (s *Session) ToggleSingle(on bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.marking.ToggleSingle(s.cursor.Current(), on)
	return s.publish()
}

// SetField updates one annotation form field
func (s *Session) SetField(name, value string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.fields.Set(name, value); err != nil {
		return Snapshot{}, err
	}
	return s.publish(), nil
}

// SaveAnnotation validates the current marks and fields, commits the record
// to the session table, and resets the marks and manual timestamp overrides
// for the next annotation. A failed build leaves all state untouched.
func (s *Session) SaveAnnotation() (*models.Annotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	record, err := BuildAnnotation(s.marking, s.fields, s.collection, s.now())
	if err != nil {
		return nil, err
	}

	s.table.Append(record)
	s.marking.Reset()
	s.fields.ResetOverrides()
	s.publish()
	return record, nil
}

// Annotations returns the committed records, optionally filtered to the
// unsynced set
func (s *Session) Annotations(unsyncedOnly bool) []models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if unsyncedOnly {
		return copyRecords(s.table.Unsynced())
	}
	return copyRecords(s.table.All())
}

// Sync pushes the unsynced records to the given store and records the outcome
// for rendering. The table is unchanged on failure and the same batch is
// resubmitted on retry.
func (s *Session) Sync(ctx context.Context, store Store) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	result, err := Sync(ctx, s.table, store)
	if err != nil {
		s.lastSync = &SyncView{SyncedAt: s.now().UTC(), Error: err.Error()}
		s.publish()
		return SyncResult{}, err
	}

	s.lastSync = &SyncView{Appended: result.Appended, SyncedAt: result.SyncedAt}
	s.publish()
	return result, nil
}

// Clear empties the session table, resets the marks, and restores the form
// fields to their defaults. The image collection and cursor survive; deleting
// the uploads means deleting the session.
func (s *Session) Clear() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.table.Clear()
	s.marking.Reset()
	s.fields.Reset(s.now())
	s.lastSync = nil
	return s.publish()
}

// Image returns the filename and bytes of the image at the given ordinal
func (s *Session) Image(ordinal int) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	img, err := s.collection.Get(ordinal)
	if err != nil {
		return "", nil, err
	}
	return img.Filename, img.Data, nil
}

// Snapshot returns the current renderable state without mutating anything
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a snapshot channel. Slow consumers skip intermediate
// frames rather than blocking the session.
func (s *Session) Subscribe() chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Snapshot, 8)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a snapshot channel
func (s *Session) Unsubscribe(ch chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) touch() {
	s.lastAccess = s.now()
}

// publish builds a snapshot and fans it out to subscribers. Callers hold the
// session mutex.
func (s *Session) publish() Snapshot {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	current := s.cursor.Current()
	snap := Snapshot{
		SessionID:   s.id,
		ImageCount:  s.collection.Len(),
		Current:     current,
		Marking:     s.marking.View(),
		Fields:      *s.fields,
		Annotations: copyRecords(s.table.All()),
	}

	if img, err := s.collection.Get(current); err == nil {
		snap.CurrentFilename = img.Filename
	}
	if t, ok, err := s.collection.Timestamp(current); err == nil && ok {
		snap.CurrentTimestamp = t.Format(TimestampLayout)
	}
	if s.lastSync != nil {
		view := *s.lastSync
		snap.LastSync = &view
	}
	return snap
}

func copyRecords(records []*models.Annotation) []models.Annotation {
	out := make([]models.Annotation, len(records))
	for i, rec := range records {
		out[i] = *rec
	}
	return out
}
