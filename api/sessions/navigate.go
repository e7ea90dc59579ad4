package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// Navigate moves the session cursor
// @Summary Move the cursor
// @Description Moves the navigation cursor. "next" and "prev" clamp at the collection edges; "goto" jumps to the given ordinal and rejects out-of-range targets without moving.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body types.NavigateRequest true "Navigation action"
// @Success 200 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/navigate [post]
func Navigate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		var req types.NavigateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		var snap session.Snapshot
		switch req.Action {
		case "next":
			snap = sess.Next()
		case "prev":
			snap = sess.Prev()
		case "goto":
			if req.Ordinal == nil {
				types.SendBadRequest(c, "goto requires an ordinal")
				return
			}
			var err error
			snap, err = sess.Goto(*req.Ordinal)
			if err != nil {
				sendSessionError(c, err)
				return
			}
		default:
			types.SendBadRequest(c, "Unknown action: "+req.Action)
			return
		}

		sendSnapshot(c, "Cursor moved", snap)
	}
}
