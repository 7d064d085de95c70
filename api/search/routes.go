package search

import (
	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// RegisterRoutes registers catalog search routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/videos", GetVideos(deps))
	router.GET("/channels", GetChannels(deps))
}
