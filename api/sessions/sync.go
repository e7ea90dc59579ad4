package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// Sync pushes unsynced annotations to the external store
// @Summary Sync annotations to the store
// @Description Appends every unsynced annotation to the configured store in a single batch. Records are marked synced only after the store confirms the append; on failure nothing is marked and the same batch is retried on the next call.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} types.SyncResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/sync [post]
func Sync(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		if deps.Store == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "No annotation store configured",
			})
			return
		}

		result, err := sess.Sync(c.Request.Context(), deps.Store)
		if err != nil {
			log.Printf("[ERROR] Sync failed for session %s: %v", sess.ID(), err)
			sendSessionError(c, err)
			return
		}

		log.Printf("[INFO] Session %s synced %d annotation(s)", sess.ID(), result.Appended)
		c.JSON(http.StatusOK, types.SyncResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Sync complete"},
			Appended:     result.Appended,
			SyncedAt:     result.SyncedAt.UTC().Format(time.RFC3339),
		})
	}
}
