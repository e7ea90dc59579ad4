package sessions

import "fmt"

// Sentinel errors for session registry operations
var (
	// ErrSessionNotFound is returned when no live session has the requested ID
	ErrSessionNotFound = fmt.Errorf("session not found")

	// ErrTooManyImages is returned when an upload exceeds the per-session image cap
	ErrTooManyImages = fmt.Errorf("too many images")

	// ErrImageTooLarge is returned when a single uploaded image exceeds the size cap
	ErrImageTooLarge = fmt.Errorf("image too large")
)

// TooManyImagesError reports an upload that exceeds the image count cap
type TooManyImagesError struct {
	Count int
	Max   int
}

func (e *TooManyImagesError) Error() string {
	return fmt.Sprintf("too many images: got %d, limit is %d", e.Count, e.Max)
}

func (e *TooManyImagesError) Is(target error) bool {
	return target == ErrTooManyImages
}

// ImageTooLargeError reports a single upload that exceeds the size cap
type ImageTooLargeError struct {
	Filename string
	Size     int64
	Max      int64
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("image %s is %d bytes, limit is %d", e.Filename, e.Size, e.Max)
}

func (e *ImageTooLargeError) Is(target error) bool {
	return target == ErrImageTooLarge
}
