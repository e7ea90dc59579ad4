package session

import (
	"sort"
	"sync"
	"time"

	"github.com/nestwatch/nestwatch-api/internal/models"
)

// ExtractFunc extracts a capture time from raw image bytes. Absence of a
// usable timestamp is a normal outcome, not an error.
type ExtractFunc func(data []byte) (time.Time, bool)

// Image is one member of a collection: stable ordinal, filename, and the
// uploaded bytes. Ordinals form a dense 0-based sequence in filename order
// and never change for the life of the session.
type Image struct {
	Ordinal  int
	Filename string
	Data     []byte
	Modified *time.Time
}

type timestampEntry struct {
	t        time.Time
	ok       bool
	resolved bool
}

// Collection is the ordered, immutable-after-load set of uploaded images.
// Capture-time extraction runs at most once per image and is memoized,
// including the "no timestamp" outcome.
type Collection struct {
	images  []Image
	extract ExtractFunc

	mu    sync.Mutex
	times []timestampEntry
}

// NewCollection sorts the uploads by filename, assigns dense ordinals, and
// returns the collection. Zero uploads is an error.
func NewCollection(uploads []models.ImageUpload, extract ExtractFunc) (*Collection, error) {
	if len(uploads) == 0 {
		return nil, ErrEmptyCollection
	}
	if extract == nil {
		extract = func([]byte) (time.Time, bool) { return time.Time{}, false }
	}

	sorted := make([]models.ImageUpload, len(uploads))
	copy(sorted, uploads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Filename < sorted[j].Filename
	})

	images := make([]Image, len(sorted))
	for i, up := range sorted {
		images[i] = Image{
			Ordinal:  i,
			Filename: up.Filename,
			Data:     up.Data,
			Modified: up.Modified,
		}
	}

	return &Collection{
		images:  images,
		extract: extract,
		times:   make([]timestampEntry, len(images)),
	}, nil
}

// Len returns the number of images in the collection
func (c *Collection) Len() int {
	return len(c.images)
}

// Get returns the image at the given ordinal
func (c *Collection) Get(ordinal int) (Image, error) {
	if ordinal < 0 || ordinal >= len(c.images) {
		return Image{}, IndexError{Ordinal: ordinal, Size: len(c.images)}
	}
	return c.images[ordinal], nil
}

// Timestamp returns the capture time for the image at the given ordinal.
// Extraction is attempted once and memoized; when EXIF is absent the
// client-supplied modification time is used, and when that is also missing
// the result is simply absent (ok == false), never an error.
func (c *Collection) Timestamp(ordinal int) (time.Time, bool, error) {
	if ordinal < 0 || ordinal >= len(c.images) {
		return time.Time{}, false, IndexError{Ordinal: ordinal, Size: len(c.images)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &c.times[ordinal]
	if !entry.resolved {
		img := c.images[ordinal]
		if t, ok := c.extract(img.Data); ok {
			entry.t, entry.ok = t, true
		} else if img.Modified != nil {
			entry.t, entry.ok = *img.Modified, true
		}
		entry.resolved = true
	}

	return entry.t, entry.ok, nil
}
