package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
)

// RegisterRoutes registers annotation session routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, syncMiddleware gin.HandlerFunc) {
	// POST /api/v1/sessions - Start a session from uploaded images
	router.POST("", Create(deps))

	// GET /api/v1/sessions/:id - Get the current session snapshot
	router.GET("/:id", Get(deps))

	// DELETE /api/v1/sessions/:id - End a session
	router.DELETE("/:id", Delete(deps))

	// POST /api/v1/sessions/:id/navigate - Move the cursor
	router.POST("/:id/navigate", Navigate(deps))

	// POST /api/v1/sessions/:id/marks - Toggle a mark at the cursor
	router.POST("/:id/marks", Mark(deps))

	// PUT /api/v1/sessions/:id/fields - Set an annotation form field
	router.PUT("/:id/fields", SetField(deps))

	// POST /api/v1/sessions/:id/annotations - Commit the pending annotation
	// GET  /api/v1/sessions/:id/annotations - List committed annotations
	router.POST("/:id/annotations", SaveAnnotation(deps))
	router.GET("/:id/annotations", GetAnnotations(deps))

	// POST /api/v1/sessions/:id/clear - Drop all committed annotations
	router.POST("/:id/clear", Clear(deps))

	// GET /api/v1/sessions/:id/images/:ordinal - Serve an uploaded image
	router.GET("/:id/images/:ordinal", GetImage(deps))

	// GET /api/v1/sessions/:id/events - Snapshot stream over websocket
	router.GET("/:id/events", Events(deps))

	// POST /api/v1/sessions/:id/sync - Push unsynced annotations to the store.
	// Tighter rate limit: each call can hit the external spreadsheet API.
	router.POST("/:id/sync", syncMiddleware, Sync(deps))
}
