package types

import (
	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/services/assignments"
	"github.com/nestwatch/nestwatch-api/internal/session"
	"github.com/nestwatch/nestwatch-api/internal/vocab"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// SessionResponse wraps a session snapshot
type SessionResponse struct {
	BaseResponse
	Session session.Snapshot `json:"session"`
}

// AnnotationsResponse for the session's committed records
type AnnotationsResponse struct {
	BaseResponse
	Annotations []models.Annotation `json:"annotations"`
	Count       int                 `json:"count"`
}

// SavedAnnotationResponse for a freshly committed record
type SavedAnnotationResponse struct {
	BaseResponse
	Annotation *models.Annotation `json:"annotation"`
}

// SyncResponse for sync outcomes
type SyncResponse struct {
	BaseResponse
	Appended int    `json:"appended"`
	SyncedAt string `json:"synced_at"`
}

// AssignmentsResponse for the assignment overview
type AssignmentsResponse struct {
	BaseResponse
	Overview *assignments.Overview `json:"overview"`
}

// ReviewersResponse for the reviewer dropdown
type ReviewersResponse struct {
	BaseResponse
	Reviewers []string `json:"reviewers"`
}

// VocabResponse for the controlled vocabularies
type VocabResponse struct {
	BaseResponse
	Vocab vocab.Lists `json:"vocab"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
