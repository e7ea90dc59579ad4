package sessions

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
	sessionsvc "github.com/nestwatch/nestwatch-api/internal/services/sessions"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// sendSessionError maps session engine errors onto HTTP responses: unknown
// sessions are 404, rejected user intents are 400, store failures are 502
func sendSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sessionsvc.ErrSessionNotFound):
		types.SendNotFound(c, "Session not found")
	case errors.Is(err, session.ErrSyncFailed):
		types.SendBadGateway(c, err.Error())
	case isRejectedIntent(err):
		types.SendBadRequest(c, err.Error())
	default:
		types.SendInternalError(c, err.Error())
	}
}

// isRejectedIntent reports whether the error is a policy rejection of a valid
// request rather than a server fault
func isRejectedIntent(err error) bool {
	for _, target := range []error{
		session.ErrEmptyCollection,
		session.ErrIndexOutOfRange,
		session.ErrInvalidMarkOrder,
		session.ErrSameImageSequence,
		session.ErrNoMarkSelected,
		session.ErrMissingField,
		session.ErrIncompleteSequence,
		session.ErrUnknownField,
		sessionsvc.ErrTooManyImages,
		sessionsvc.ErrImageTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
