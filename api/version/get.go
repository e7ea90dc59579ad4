package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary Service version
// @Description Returns the service name and version.
// @Tags version
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /version [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "NestWatch Annotation API",
			"version":     "1.0.0",
			"description": "Session engine for annotating camera trap imagery",
			"status":      "running",
		})
	}
}
