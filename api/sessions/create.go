package sessions

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/models"
)

// Create starts a new annotation session from the uploaded images
// @Summary Start an annotation session
// @Description Uploads a batch of camera trap images and opens a session over them.
// @Description Images are ordered by filename; the optional modified_times field supplies file
// @Description modification times as a JSON object of filename to RFC3339 time, used as a
// @Description capture-time fallback when an image carries no EXIF timestamp.
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Camera trap images (repeatable)"
// @Param modified_times formData string false "JSON object mapping filename to RFC3339 modification time"
// @Success 201 {object} types.SessionResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/sessions [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			types.SendBadRequest(c, "Invalid multipart form")
			return
		}

		files := form.File["images"]
		if len(files) == 0 {
			types.SendBadRequest(c, "No images uploaded")
			return
		}

		modified, err := parseModifiedTimes(c.PostForm("modified_times"))
		if err != nil {
			types.SendBadRequest(c, "Invalid modified_times: "+err.Error())
			return
		}

		uploads := make([]models.ImageUpload, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				types.SendBadRequest(c, "Cannot read upload "+fh.Filename)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				types.SendBadRequest(c, "Cannot read upload "+fh.Filename)
				return
			}

			upload := models.ImageUpload{Filename: fh.Filename, Data: data}
			if t, ok := modified[fh.Filename]; ok {
				upload.Modified = &t
			}
			uploads = append(uploads, upload)
		}

		sess, err := deps.Sessions.Create(c.Request.Context(), uploads)
		if err != nil {
			log.Printf("[ERROR] Failed to create session: %v", err)
			sendSessionError(c, err)
			return
		}

		c.JSON(http.StatusCreated, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Session created"},
			Session:      sess.Snapshot(),
		})
	}
}

// parseModifiedTimes decodes the optional filename-to-mtime map
func parseModifiedTimes(raw string) (map[string]time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	var byName map[string]string
	if err := json.Unmarshal([]byte(raw), &byName); err != nil {
		return nil, err
	}

	parsed := make(map[string]time.Time, len(byName))
	for name, value := range byName {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, err
		}
		parsed[name] = t
	}
	return parsed, nil
}
