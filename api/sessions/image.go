package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// GetImage serves one uploaded image by ordinal
// @Summary Get an uploaded image
// @Description Serves the raw bytes of the image at the given position in the session's collection.
// @Tags sessions
// @Produce jpeg
// @Param id path string true "Session ID"
// @Param ordinal path int true "Image position"
// @Success 200 {file} binary
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/images/{ordinal} [get]
func GetImage(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		ordinal, ok := types.ParseIntParam(c, "ordinal")
		if !ok {
			return
		}

		filename, data, err := sess.Image(ordinal)
		if err != nil {
			sendSessionError(c, err)
			return
		}

		c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
		c.Data(http.StatusOK, "image/jpeg", data)
	}
}
