package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gochat/service"
)

type ChatController struct {
	chats  *service.ChatService
	logger *logrus.Logger
}

func NewChatController(chats *service.ChatService, logger *logrus.Logger) *ChatController {
	return &ChatController{chats: chats, logger: logger}
}

// Chat handles one user turn. A missing conversation_id starts a new
// conversation; the reply and the conversation id come back together.
func (ch *ChatController) Chat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	var reqData struct {
		Message        string `json:"message" binding:"required"`
		ConversationID uint   `json:"conversation_id"`
	}

	if err := c.ShouldBindJSON(&reqData); err != nil {
		ch.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := ch.chats.Send(c.Request.Context(), user.ID, reqData.ConversationID, reqData.Message)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		ch.logger.Warnf("[%s] Chat request failed for user %d: %s", c.GetString("requestId"), user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ch.logger.Infof("[%s] Chat turn completed for conversation %d", c.GetString("requestId"), result.ConversationID)
	c.JSON(http.StatusOK, result)
}
