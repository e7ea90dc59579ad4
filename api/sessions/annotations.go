package sessions

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// SaveAnnotation commits the pending annotation to the session table
// @Summary Commit the pending annotation
// @Description Validates the current marks and form fields, builds an annotation record, and appends it to the session table. On success the marks and per-record field overrides are reset; the descriptive fields persist for the next record.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} types.SavedAnnotationResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/annotations [post]
func SaveAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		record, err := sess.SaveAnnotation()
		if err != nil {
			sendSessionError(c, err)
			return
		}

		log.Printf("[INFO] Session %s committed %s annotation %s", sess.ID(), record.Kind, record.UUID)
		c.JSON(http.StatusCreated, types.SavedAnnotationResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Annotation saved"},
			Annotation:   record,
		})
	}
}

// GetAnnotations lists the session's committed annotations
// @Summary List committed annotations
// @Description Returns the session's committed annotations in commit order. Pass unsynced=true to list only records not yet confirmed by the store.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param unsynced query bool false "Only annotations not yet synced"
// @Success 200 {object} types.AnnotationsResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/annotations [get]
func GetAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		unsyncedOnly := c.Query("unsynced") == "true"
		records := sess.Annotations(unsyncedOnly)

		c.JSON(http.StatusOK, types.AnnotationsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Annotations"},
			Annotations:  records,
			Count:        len(records),
		})
	}
}
