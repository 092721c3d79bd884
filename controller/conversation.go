package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gochat/model"
)

type ConversationController struct {
	convs  *model.ConversationStore
	logger *logrus.Logger
}

func NewConversationController(convs *model.ConversationStore, logger *logrus.Logger) *ConversationController {
	return &ConversationController{convs: convs, logger: logger}
}

func conversationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
		return 0, false
	}
	return uint(id), true
}

// Create starts an empty conversation for the authenticated user.
func (ctrl *ConversationController) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	conv, err := ctrl.convs.CreateConversation(user.ID)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to create conversation: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// List returns the user's conversation summaries, most recently active first.
func (ctrl *ConversationController) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}

	summaries, err := ctrl.convs.ListConversations(user.ID)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to list conversations: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for i := range summaries {
		if summaries[i].Preview == "" {
			summaries[i].Preview = "No messages yet"
		}
	}
	c.JSON(http.StatusOK, summaries)
}

// Messages returns the ordered (role, content) history of a conversation. An
// empty conversation yields an empty array.
func (ctrl *ConversationController) Messages(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	history, err := ctrl.convs.GetHistory(id)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to fetch history: %s", c.GetString("requestId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if history == nil {
		history = []model.Turn{}
	}
	c.JSON(http.StatusOK, history)
}

// Get returns a conversation with all its messages.
func (ctrl *ConversationController) Get(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	conv, err := ctrl.convs.GetWithMessages(id)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to fetch conversation %d: %s", c.GetString("requestId"), id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if conv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	messages := conv.Messages
	if messages == nil {
		messages = []model.Message{}
	}
	conv.Messages = nil
	c.JSON(http.StatusOK, gin.H{"conversation": conv, "messages": messages})
}

// Delete removes a conversation and all its messages.
func (ctrl *ConversationController) Delete(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	removed, err := ctrl.convs.DeleteConversation(id)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to delete conversation %d: %s", c.GetString("requestId"), id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted successfully", "conversation_id": id})
}
