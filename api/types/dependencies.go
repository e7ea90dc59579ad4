package types

import (
	"github.com/nestwatch/nestwatch-api/internal/database"
	"github.com/nestwatch/nestwatch-api/internal/services/assignments"
	"github.com/nestwatch/nestwatch-api/internal/services/sessions"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	Sessions          sessions.Registry
	AssignmentService assignments.AssignmentService
	Store             session.Store
}
