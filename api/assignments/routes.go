package assignments

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// RegisterRoutes registers assignment overview routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/assignments - Assignment overview with status counts
	router.GET("", GetOverview(deps))

	// GET /api/v1/assignments/reviewers - Reviewer names for the form dropdown
	router.GET("/reviewers", GetReviewers(deps))

	// POST /api/v1/assignments/refresh - Drop the cached sheet
	router.POST("/refresh", Refresh(deps))
}
