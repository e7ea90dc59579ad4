package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// Mark toggles a mark at the current cursor position
// @Summary Toggle a mark
// @Description Toggles the sequence start, sequence end, or single-observation mark at the image under the cursor. Sequence and single marks are mutually exclusive; an end mark before its start or on the same image as its start is rejected.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body types.MarkRequest true "Mark toggle"
// @Success 200 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/marks [post]
func Mark(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		var req types.MarkRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		var snap session.Snapshot
		var err error
		switch req.Mark {
		case "start":
			snap, err = sess.ToggleStart(*req.On)
		case "end":
			snap, err = sess.ToggleEnd(*req.On)
		case "single":
			snap = sess.ToggleSingle(*req.On)
		default:
			types.SendBadRequest(c, "Unknown mark: "+req.Mark)
			return
		}
		if err != nil {
			sendSessionError(c, err)
			return
		}

		sendSnapshot(c, "Mark updated", snap)
	}
}
