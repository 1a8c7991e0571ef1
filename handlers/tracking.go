package handlers

import (
	"errors"
	"net/http"

	"mindwell/models"
	"mindwell/services/tracking"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrackingHandler serves the caller's quiz history and course progress.
type TrackingHandler struct {
	Tracker *tracking.Tracker
}

func (h *TrackingHandler) QuizHistory(c *gin.Context) {
	userID, _ := currentUser(c)
	history, err := h.Tracker.QuizHistory(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": history})
}

func (h *TrackingHandler) ClearQuizHistory(c *gin.Context) {
	userID, _ := currentUser(c)
	if err := h.Tracker.ClearQuizHistory(c.Request.Context(), userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrackingHandler) SetCourseProgress(c *gin.Context) {
	userID, _ := currentUser(c)

	var input models.CourseProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONCodedError(c, http.StatusBadRequest, "invalidRequest", "percent is required.")
		return
	}
	p, err := h.Tracker.SetCourseProgress(c.Request.Context(), userID, c.Param("courseId"), *input.Percent)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *TrackingHandler) CourseProgress(c *gin.Context) {
	userID, _ := currentUser(c)
	progress, err := h.Tracker.CourseProgress(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": progress})
}

func (h *TrackingHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracking.ErrInvalidProgress), errors.Is(err, tracking.ErrInvalidCourse):
		utils.JSONCodedError(c, http.StatusBadRequest, "invalidRequest", err.Error())
	case errors.Is(err, tracking.ErrInvalidUser):
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
	default:
		getLogger(c).Error("Tracking store failed", zap.Error(err))
		utils.JSONCodedError(c, http.StatusServiceUnavailable, "storeUnavailable", "Progress tracking is unavailable right now.")
	}
}
