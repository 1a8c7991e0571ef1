package handlers

import (
	"net/http"

	"mindwell/models"
	"mindwell/services/chatbot"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Bot *chatbot.Bot
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var input models.ChatRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONCodedError(c, http.StatusBadRequest, "invalidRequest", "message is required.")
		return
	}
	reply := h.Bot.Reply(input.Message)
	if reply.IsCrisis {
		getLogger(c).Warn("Crisis language detected in chat")
	}
	c.JSON(http.StatusOK, reply)
}
