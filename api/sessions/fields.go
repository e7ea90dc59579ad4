package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// SetField sets one annotation form field
// @Summary Set a form field
// @Description Sets a single annotation form field on the pending annotation. Field names: site, camera_id, retrieval_date, category, species, behavior, reviewer, start_time, end_time.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body types.FieldRequest true "Field assignment"
// @Success 200 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/fields [put]
func SetField(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		var req types.FieldRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		snap, err := sess.SetField(req.Field, req.Value)
		if err != nil {
			sendSessionError(c, err)
			return
		}

		sendSnapshot(c, "Field updated", snap)
	}
}
