package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// Clear drops all committed annotations from the session table
// @Summary Clear the session table
// @Description Removes every committed annotation, synced or not, and resets the marks and per-record field overrides. The uploaded images and cursor position are kept.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.SessionResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/clear [post]
func Clear(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		sendSnapshot(c, "Session cleared", sess.Clear())
	}
}
