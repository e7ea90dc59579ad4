package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// Delete ends a session and releases its images
// @Summary End a session
// @Description Removes the session and its uploaded images. Unsynced annotations are lost.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
			sendSessionError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Session deleted",
		})
	}
}
