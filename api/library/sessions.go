package library

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// StartSession opens a study session
// @Summary      Start a study session
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        request body types.StartSessionRequest false "Optional video to study"
// @Success      201 {object} types.SessionResponse
// @Router       /api/v1/library/sessions [post]
func StartSession(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.StartSessionRequest
		_ = c.ShouldBindJSON(&req)

		session, err := deps.Library.StartSession(c.Request.Context(), req.VideoID)
		if err != nil {
			types.RespondError(c, err, "Failed to start session")
			return
		}

		c.JSON(http.StatusCreated, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Session started"},
			Session:      session,
		})
	}
}

// EndSession closes a study session
// @Summary      End a study session
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        id path int true "Session ID"
// @Param        request body types.EndSessionRequest true "What was accomplished"
// @Success      200 {object} types.SessionResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/sessions/{id}/end [post]
func EndSession(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req types.EndSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		session, err := deps.Library.EndSession(c.Request.Context(), sessionID, req.CardsReviewed, req.SecondsActive)
		if err != nil {
			types.RespondError(c, err, "Failed to end session")
			return
		}

		c.JSON(http.StatusOK, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Session ended"},
			Session:      session,
		})
	}
}

// SessionStats aggregates recent practice activity
// @Summary      Practice statistics
// @Tags         library
// @Produce      json
// @Param        days query int false "Window in days (default 7)"
// @Success      200 {object} types.SessionStatsResponse
// @Router       /api/v1/library/sessions/stats [get]
func SessionStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
		if days < 1 || days > 365 {
			days = 7
		}

		stats, err := deps.Library.SessionStats(c.Request.Context(), time.Now().AddDate(0, 0, -days))
		if err != nil {
			types.RespondError(c, err, "Failed to aggregate stats")
			return
		}

		c.JSON(http.StatusOK, types.SessionStatsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Stats aggregated"},
			Stats:        stats,
		})
	}
}
