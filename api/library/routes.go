package library

import (
	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// RegisterRoutes registers learning library routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/videos", ListVideos(deps))
	router.POST("/videos", SaveVideo(deps))
	router.GET("/videos/:videoId", GetVideo(deps))
	router.DELETE("/videos/:videoId", RemoveVideo(deps))
	router.POST("/videos/:videoId/watch", RecordWatch(deps))
	router.GET("/videos/:videoId/cards", ListCards(deps))
	router.POST("/videos/:videoId/cards", SaveCard(deps))

	router.GET("/channels", ListChannels(deps))
	router.POST("/channels", FollowChannel(deps))
	router.DELETE("/channels/:channelId", UnfollowChannel(deps))

	router.GET("/cards/due", DueCards(deps))
	router.POST("/cards/:id/review", ReviewCard(deps))
	router.DELETE("/cards/:id", RemoveCard(deps))

	router.POST("/sessions", StartSession(deps))
	router.POST("/sessions/:id/end", EndSession(deps))
	router.GET("/sessions/stats", SessionStats(deps))
}
