package handlers

import (
	"errors"
	"net/http"

	"mindwell/models"
	"mindwell/services/screening"
	"mindwell/services/tracking"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScreeningHandler scores quizzes and records results for signed-in users.
type ScreeningHandler struct {
	Scorer  *screening.Service
	Tracker *tracking.Tracker // optional
}

func (h *ScreeningHandler) SubmitQuiz(c *gin.Context) {
	logger := getLogger(c)
	quiz := c.Param("quiz")

	var input models.ScreeningInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONCodedError(c, http.StatusBadRequest, "invalidRequest", "answers are required.")
		return
	}

	result, err := h.Scorer.Score(quiz, input.Answers)
	switch {
	case errors.Is(err, screening.ErrUnknownQuiz):
		utils.JSONCodedError(c, http.StatusNotFound, "notFound", "Unknown quiz.")
		return
	case errors.Is(err, screening.ErrInvalidAnswers):
		utils.JSONCodedError(c, http.StatusBadRequest, "invalidRequest", err.Error())
		return
	case err != nil:
		logger.Error("Scoring failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	resp := gin.H{"result": result}
	if userID, ok := currentUser(c); ok && h.Tracker != nil {
		rec, err := h.Tracker.RecordQuizResult(c.Request.Context(), userID, result, input.Answers)
		if err != nil {
			logger.Warn("Quiz result not recorded", zap.String("quiz", quiz), zap.Error(err))
		} else {
			resp["recordId"] = rec.ID
		}
	}
	if result.SelfHarmRisk {
		logger.Info("Screening flagged self-harm risk", zap.String("quiz", quiz))
	}
	c.JSON(http.StatusOK, resp)
}
