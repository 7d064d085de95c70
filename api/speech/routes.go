package speech

import (
	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// RegisterRoutes registers speech recognition routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/transcriptions", Post(deps))
	router.GET("/providers", GetProviders(deps))
}
