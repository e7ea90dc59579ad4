package session

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEmptyCollection    = errors.New("image collection is empty")
	ErrIndexOutOfRange    = errors.New("image index out of range")
	ErrInvalidMarkOrder   = errors.New("end mark cannot precede start mark")
	ErrSameImageSequence  = errors.New("sequence start and end cannot be the same image")
	ErrNoMarkSelected     = errors.New("no start/end or single-image mark selected")
	ErrMissingField       = errors.New("required field missing")
	ErrIncompleteSequence = errors.New("sequence marks are incomplete")
	ErrUnknownField       = errors.New("unknown metadata field")
	ErrSyncFailed         = errors.New("sync failed")
)

// IndexError reports an ordinal that falls outside the collection bounds
type IndexError struct {
	Ordinal int
	Size    int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("image index %d out of range [0, %d)", e.Ordinal, e.Size)
}

func (e IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// MarkOrderError reports an end mark placed before the current start mark
type MarkOrderError struct {
	Start int
	End   int
}

func (e MarkOrderError) Error() string {
	return fmt.Sprintf("end mark at image %d precedes start mark at image %d", e.End, e.Start)
}

func (e MarkOrderError) Is(target error) bool {
	return target == ErrInvalidMarkOrder
}

// MissingFieldError reports the first required metadata field found empty
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

func (e MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// SyncError wraps a transport or auth failure from the external store.
// The session table is untouched when a SyncError is returned.
type SyncError struct {
	Cause error
}

func (e SyncError) Error() string {
	return fmt.Sprintf("sync to external store failed: %v", e.Cause)
}

func (e SyncError) Is(target error) bool {
	return target == ErrSyncFailed
}

func (e SyncError) Unwrap() error {
	return e.Cause
}
