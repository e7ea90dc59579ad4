package exif

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime extracts the capture time embedded in an image's EXIF block,
// preferring DateTimeOriginal over DateTime. Malformed or absent EXIF is a
// normal outcome: the function never returns an error, only ok == false.
func CaptureTime(data []byte) (time.Time, bool) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, false
	}

	// DateTime prefers DateTimeOriginal and falls back to the DateTime tag
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
