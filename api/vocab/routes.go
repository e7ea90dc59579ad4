package vocab

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// RegisterRoutes registers vocabulary routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/vocab - Controlled vocabularies for the annotation form
	router.GET("", Get(deps))
}
