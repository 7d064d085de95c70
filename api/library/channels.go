package library

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	"github.com/eigotube/immersion-api/internal/models"
)

// ListChannels returns followed channels
// @Summary      List followed channels
// @Tags         library
// @Produce      json
// @Success      200 {object} types.ChannelsResponse
// @Router       /api/v1/library/channels [get]
func ListChannels(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		channels, err := deps.Library.ListChannels(c.Request.Context())
		if err != nil {
			types.RespondError(c, err, "Failed to list channels")
			return
		}

		c.JSON(http.StatusOK, types.ChannelsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Channels retrieved"},
			Channels:     channels,
			Count:        len(channels),
		})
	}
}

// FollowChannel follows a channel
// @Summary      Follow a channel
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        request body types.FollowChannelRequest true "Channel metadata"
// @Success      201 {object} types.BaseResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/library/channels [post]
func FollowChannel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.FollowChannelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		channel := &models.Channel{
			ChannelID:   req.ChannelID,
			Title:       req.Title,
			Description: req.Description,
			Thumbnail:   req.Thumbnail,
		}

		if err := deps.Library.FollowChannel(c.Request.Context(), channel); err != nil {
			types.RespondError(c, err, "Failed to follow channel")
			return
		}

		c.JSON(http.StatusCreated, types.BaseResponse{Status: types.StatusOK, Message: "Channel followed"})
	}
}

// UnfollowChannel unfollows a channel
// @Summary      Unfollow a channel
// @Tags         library
// @Produce      json
// @Param        channelId path string true "Channel ID"
// @Success      200 {object} types.BaseResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/channels/{channelId} [delete]
func UnfollowChannel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID, ok := types.RequireParam(c, "channelId")
		if !ok {
			return
		}

		if err := deps.Library.UnfollowChannel(c.Request.Context(), channelID); err != nil {
			types.RespondError(c, err, "Failed to unfollow channel")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Channel unfollowed"})
	}
}
