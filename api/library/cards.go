package library

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	"github.com/eigotube/immersion-api/internal/models"
)

// ListCards returns every study card for a library video
// @Summary      List study cards
// @Tags         library
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Success      200 {object} types.StudyCardsResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/videos/{videoId}/cards [get]
func ListCards(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		cards, err := deps.Library.StudyCardsForVideo(c.Request.Context(), videoID)
		if err != nil {
			types.RespondError(c, err, "Failed to list study cards")
			return
		}

		c.JSON(http.StatusOK, types.StudyCardsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Study cards retrieved"},
			Cards:        cards,
			Count:        len(cards),
		})
	}
}

// SaveCard cuts a subtitle cue into a study card
// @Summary      Save a study card
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Param        request body types.SaveStudyCardRequest true "Cue text and timing"
// @Success      201 {object} types.SingleStudyCardResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/videos/{videoId}/cards [post]
func SaveCard(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		var req types.SaveStudyCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		video, err := deps.Library.GetVideo(c.Request.Context(), videoID)
		if err != nil {
			types.RespondError(c, err, "Video not in library")
			return
		}

		card := &models.StudyCard{
			VideoRef:     video.ID,
			CueStart:     req.CueStart,
			CueEnd:       req.CueEnd,
			EnglishText:  req.EnglishText,
			JapaneseText: req.JapaneseText,
			Note:         req.Note,
		}

		if err := deps.Library.SaveStudyCard(c.Request.Context(), card); err != nil {
			types.RespondError(c, err, "Failed to save study card")
			return
		}

		c.JSON(http.StatusCreated, types.SingleStudyCardResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Study card saved"},
			Card:         card,
		})
	}
}

// DueCards returns cards whose review is due
// @Summary      List due study cards
// @Tags         library
// @Produce      json
// @Param        limit query int false "Maximum cards returned"
// @Success      200 {object} types.StudyCardsResponse
// @Router       /api/v1/library/cards/due [get]
func DueCards(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		cards, err := deps.Library.DueStudyCards(c.Request.Context(), limit)
		if err != nil {
			types.RespondError(c, err, "Failed to list due cards")
			return
		}

		c.JSON(http.StatusOK, types.StudyCardsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Due cards retrieved"},
			Cards:        cards,
			Count:        len(cards),
		})
	}
}

// ReviewCard marks a card reviewed and reschedules it
// @Summary      Review a study card
// @Tags         library
// @Produce      json
// @Param        id path int true "Card ID"
// @Success      200 {object} types.SingleStudyCardResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/cards/{id}/review [post]
func ReviewCard(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		card, err := deps.Library.ReviewStudyCard(c.Request.Context(), cardID)
		if err != nil {
			types.RespondError(c, err, "Failed to review card")
			return
		}

		c.JSON(http.StatusOK, types.SingleStudyCardResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Card reviewed"},
			Card:         card,
		})
	}
}

// RemoveCard deletes a study card
// @Summary      Remove a study card
// @Tags         library
// @Produce      json
// @Param        id path int true "Card ID"
// @Success      200 {object} types.BaseResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/library/cards/{id} [delete]
func RemoveCard(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.Library.RemoveStudyCard(c.Request.Context(), cardID); err != nil {
			types.RespondError(c, err, "Failed to remove card")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Card removed"})
	}
}
