package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		response["database"] = getDatabaseStatus(deps)

		if deps != nil && deps.Transcriber != nil {
			response["speechRecognition"] = gin.H{"available": deps.Transcriber.Available()}
		}
		if deps != nil && deps.Search != nil {
			response["search"] = gin.H{"configured": deps.Search.Configured()}
		}

		c.JSON(http.StatusOK, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}
