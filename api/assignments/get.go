package assignments

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// GetOverview returns the assignment overview
// @Summary Get the assignment overview
// @Description Returns every camera review assignment with per-status counts, read from the configured assignments source. Results are cached briefly.
// @Tags assignments
// @Produce json
// @Success 200 {object} types.AssignmentsResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/v1/assignments [get]
func GetOverview(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.AssignmentService == nil {
			types.SendBadGateway(c, "No assignment source configured")
			return
		}

		overview, err := deps.AssignmentService.Overview(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to load assignment overview: %v", err)
			types.SendBadGateway(c, "Failed to load assignments")
			return
		}

		c.JSON(http.StatusOK, types.AssignmentsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Assignment overview"},
			Overview:     overview,
		})
	}
}

// GetReviewers returns the reviewer names for the annotation form dropdown
// @Summary List reviewers
// @Description Returns the unique non-blank reviewer names from the assignment sheet, sorted.
// @Tags assignments
// @Produce json
// @Success 200 {object} types.ReviewersResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /api/v1/assignments/reviewers [get]
func GetReviewers(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.AssignmentService == nil {
			types.SendBadGateway(c, "No assignment source configured")
			return
		}

		reviewers, err := deps.AssignmentService.Reviewers(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to load reviewers: %v", err)
			types.SendBadGateway(c, "Failed to load reviewers")
			return
		}

		c.JSON(http.StatusOK, types.ReviewersResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Reviewers"},
			Reviewers:    reviewers,
		})
	}
}

// Refresh drops the cached assignment sheet
// @Summary Refresh the assignment cache
// @Description Drops the cached assignment list so the next read hits the source.
// @Tags assignments
// @Produce json
// @Success 200 {object} types.BaseResponse
// @Router /api/v1/assignments/refresh [post]
func Refresh(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.AssignmentService != nil {
			deps.AssignmentService.Refresh()
		}
		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Assignment cache refreshed",
		})
	}
}
