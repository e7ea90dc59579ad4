package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// getSession looks up the session for the :id route param, sending the error
// response itself when the session does not exist
func getSession(c *gin.Context, deps *types.Dependencies) (*session.Session, bool) {
	sess, err := deps.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendSessionError(c, err)
		return nil, false
	}
	return sess, true
}

// sendSnapshot writes the standard snapshot envelope
func sendSnapshot(c *gin.Context, message string, snap session.Snapshot) {
	c.JSON(http.StatusOK, types.SessionResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: message},
		Session:      snap,
	})
}

// Get returns the current session snapshot
// @Summary Get session state
// @Description Returns the full renderable state of a session: cursor position, marks, form fields, and committed annotations.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.SessionResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}
		sendSnapshot(c, "Session state", sess.Snapshot())
	}
}
