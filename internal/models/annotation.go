package models

import "time"

// AnnotationKind distinguishes a multi-image sequence from a single-image observation
type AnnotationKind string

const (
	KindSequence AnnotationKind = "sequence"
	KindSingle   AnnotationKind = "single"
)

// Annotation represents a committed observation built from reviewer marks and
// metadata. Records are append-only: once committed, only the Synced flag
// changes, and only after the external store confirms the append.
type Annotation struct {
	UUID string         `json:"uuid"`
	Kind AnnotationKind `json:"kind"`

	// Image references (ordinals into the session's image collection).
	// For single observations StartRef == EndRef.
	StartRef      int    `json:"start_ref"`
	EndRef        int    `json:"end_ref"`
	StartFilename string `json:"start_filename"`
	EndFilename   string `json:"end_filename"`

	// Reviewer-supplied metadata
	Site          string `json:"site"`
	CameraID      string `json:"camera_id"`
	RetrievalDate string `json:"retrieval_date"`
	Category      string `json:"category"`
	Species       string `json:"species"`
	Behavior      string `json:"behavior"`
	Reviewer      string `json:"reviewer"`

	// Capture times derived from EXIF (or manual overrides when EXIF is
	// absent), formatted "2006-01-02 15:04:05". Empty when unknown.
	StartTimestamp string `json:"start_timestamp,omitempty"`
	EndTimestamp   string `json:"end_timestamp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	Synced    bool      `json:"synced"`
}

// IsSingle reports whether the annotation covers exactly one image
func (a *Annotation) IsSingle() bool {
	return a.Kind == KindSingle
}
