package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"gochat/model"
)

// FallbackReply is the assistant turn recorded when the generation call
// fails. Provider failures are swallowed on purpose: the caller still gets a
// well-formed reply and the failure is only visible in the logs.
const FallbackReply = "I'm sorry, I encountered an error while processing your request."

var ErrConversationNotFound = errors.New("conversation not found")

// Generator produces the next assistant reply from an ordered history.
type Generator interface {
	Generate(ctx context.Context, turns []model.Turn) (string, error)
}

type ChatResult struct {
	Response       string `json:"response"`
	ConversationID uint   `json:"conversation_id"`
}

// ChatService drives one chat turn: ensure a conversation exists, append the
// user message, generate a reply over the full history and append it.
type ChatService struct {
	convs     *model.ConversationStore
	generator Generator
	logger    *logrus.Logger
}

func NewChatService(convs *model.ConversationStore, generator Generator, logger *logrus.Logger) *ChatService {
	return &ChatService{convs: convs, generator: generator, logger: logger}
}

// Send handles one user message. A zero conversationID means a fresh
// conversation is created for the user. The whole history is sent to the
// generator on every turn; there is no windowing or summarization.
func (s *ChatService) Send(ctx context.Context, userID uint, conversationID uint, message string) (*ChatResult, error) {
	if conversationID == 0 {
		conv, err := s.convs.CreateConversation(userID)
		if err != nil {
			return nil, err
		}
		conversationID = conv.ID
	} else {
		conv, err := s.convs.GetConversation(conversationID)
		if err != nil {
			return nil, err
		}
		if conv == nil {
			return nil, ErrConversationNotFound
		}
	}

	if _, err := s.convs.AppendMessage(conversationID, model.RoleUser, message); err != nil {
		return nil, err
	}

	history, err := s.convs.GetHistory(conversationID)
	if err != nil {
		return nil, err
	}

	reply, err := s.generator.Generate(ctx, history)
	if err != nil {
		s.logger.Warnf("Generation failed for conversation %d: %v", conversationID, err)
		reply = FallbackReply
	}

	if _, err := s.convs.AppendMessage(conversationID, model.RoleAssistant, reply); err != nil {
		return nil, err
	}

	return &ChatResult{Response: reply, ConversationID: conversationID}, nil
}
