package library

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	"github.com/eigotube/immersion-api/internal/models"
)

// ListVideos returns the saved video library
// @Summary      List library videos
// @Tags         library
// @Produce      json
// @Param        page query int false "Page number (1-based)"
// @Param        limit query int false "Page size (max 100)"
// @Success      200 {object} types.VideosResponse
// @Router       /api/v1/library/videos [get]
func ListVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		videos, total, err := deps.Library.ListVideos(c.Request.Context(), page, limit)
		if err != nil {
			log.Printf("[ERROR] Failed to list videos: %v", err)
			types.RespondError(c, err, "Failed to list videos")
			return
		}

		c.JSON(http.StatusOK, types.VideosResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Videos retrieved"},
			Videos:       videos,
			Count:        len(videos),
			Total:        total,
			Page:         page,
		})
	}
}

// SaveVideo adds a video to the library
// @Summary      Save a video
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        request body types.SaveVideoRequest true "Video metadata"
// @Success      201 {object} types.SingleVideoResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/library/videos [post]
func SaveVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SaveVideoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		video := &models.Video{
			VideoID:      req.VideoID,
			Title:        req.Title,
			Description:  req.Description,
			ChannelTitle: req.ChannelTitle,
			Thumbnail:    req.Thumbnail,
			PublishedAt:  req.PublishedAt,
		}

		if err := deps.Library.SaveVideo(c.Request.Context(), video); err != nil {
			types.RespondError(c, err, "Failed to save video")
			return
		}

		c.JSON(http.StatusCreated, types.SingleVideoResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Video saved"},
			Video:        video,
		})
	}
}

// GetVideo returns one saved video
// @Summary      Get a library video
// @Tags         library
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Success      200 {object} types.SingleVideoResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/videos/{videoId} [get]
func GetVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		video, err := deps.Library.GetVideo(c.Request.Context(), videoID)
		if err != nil {
			types.RespondError(c, err, "Failed to get video")
			return
		}

		c.JSON(http.StatusOK, types.SingleVideoResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Video retrieved"},
			Video:        video,
		})
	}
}

// RemoveVideo deletes a saved video
// @Summary      Remove a library video
// @Tags         library
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Success      200 {object} types.BaseResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/videos/{videoId} [delete]
func RemoveVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		if err := deps.Library.RemoveVideo(c.Request.Context(), videoID); err != nil {
			types.RespondError(c, err, "Failed to remove video")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Video removed"})
	}
}

// RecordWatch stores playback progress for a saved video
// @Summary      Record playback progress
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Param        request body types.WatchRequest true "Resume position in seconds"
// @Success      200 {object} types.BaseResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/videos/{videoId}/watch [post]
func RecordWatch(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		var req types.WatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		if err := deps.Library.RecordWatch(c.Request.Context(), videoID, req.Position); err != nil {
			types.RespondError(c, err, "Failed to record watch")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Progress recorded"})
	}
}
