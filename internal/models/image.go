package models

import "time"

// ImageUpload is one uploaded camera-trap image as received from the
// presentation layer. The session's image collection takes ownership of the
// bytes; they are never mutated after upload.
type ImageUpload struct {
	Filename string
	Data     []byte

	// Modified is the client-supplied last-modified time of the original
	// file, used as a capture-time fallback when the image carries no EXIF.
	Modified *time.Time
}
