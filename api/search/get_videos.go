package search

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	"github.com/eigotube/immersion-api/internal/services/youtube"
)

// GetVideos searches the catalog for videos
// @Summary      Search videos
// @Description  Search the video catalog by keyword. Supports paging through nextPageToken and
// @Description  restricting results to one channel.
// @Tags         search
// @Produce      json
// @Param        q query string true "Search terms" example(english listening practice)
// @Param        maxResults query int false "Page size (max 50)"
// @Param        pageToken query string false "Continuation token from a previous page"
// @Param        order query string false "Sort order: relevance, date, viewCount, rating"
// @Param        channelId query string false "Restrict to one channel"
// @Success      200 {object} types.VideoSearchResponse "Matching videos"
// @Failure      400 {object} types.ErrorResponse "Missing search terms"
// @Failure      404 {object} types.ErrorResponse "No results"
// @Failure      503 {object} types.ErrorResponse "Catalog search not configured"
// @Router       /api/v1/search/videos [get]
func GetVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Missing search terms",
			})
			return
		}

		opts := &youtube.SearchOptions{
			PageToken: c.Query("pageToken"),
			Order:     c.Query("order"),
			ChannelID: c.Query("channelId"),
		}
		if raw := c.Query("maxResults"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				opts.MaxResults = n
			}
		}

		results, err := deps.Search.SearchVideos(c.Request.Context(), query, opts)
		if err != nil {
			respondSearchError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.VideoSearchResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Search complete"},
			Results:      results,
		})
	}
}

func respondSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, youtube.ErrNoResults):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "No results found",
		})
	case errors.Is(err, youtube.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "Catalog search is not configured",
		})
	case errors.Is(err, youtube.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "Catalog quota exceeded, try again later",
		})
	default:
		log.Printf("[ERROR] Catalog search failed: %v", err)
		types.RespondError(c, err, "Search failed")
	}
}
