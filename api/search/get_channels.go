package search

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// GetChannels searches the catalog for channels
// @Summary      Search channels
// @Description  Search the video catalog for channels by keyword.
// @Tags         search
// @Produce      json
// @Param        q query string true "Search terms"
// @Param        maxResults query int false "Page size (max 50)"
// @Success      200 {object} types.ChannelSearchResponse "Matching channels"
// @Failure      400 {object} types.ErrorResponse "Missing search terms"
// @Failure      404 {object} types.ErrorResponse "No results"
// @Router       /api/v1/search/channels [get]
func GetChannels(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Missing search terms",
			})
			return
		}

		maxResults := 0
		if raw := c.Query("maxResults"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				maxResults = n
			}
		}

		results, err := deps.Search.SearchChannels(c.Request.Context(), query, maxResults)
		if err != nil {
			respondSearchError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ChannelSearchResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Search complete"},
			Results:      results,
		})
	}
}
