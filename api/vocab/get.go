package vocab

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/vocab"
)

// Get returns the controlled vocabularies for the annotation form
// @Summary Get form vocabularies
// @Description Returns the site, camera, category, species, and behavior lists used to populate the annotation form dropdowns.
// @Tags vocab
// @Produce json
// @Success 200 {object} types.VocabResponse
// @Router /api/v1/vocab [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VocabResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Vocabularies"},
			Vocab:        vocab.All(),
		})
	}
}
