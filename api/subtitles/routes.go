package subtitles

import (
	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// RegisterRoutes registers subtitle resolution routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/:videoId", Get(deps))
	router.GET("/:videoId/languages", GetLanguages(deps))
	router.GET("/:videoId/debug", GetDebug(deps))
	router.DELETE("/:videoId", Delete(deps))
}
