package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Conversation is a thread of messages owned by exactly one user. The owner
// is fixed at creation.
type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Messages  []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// Turn is one (role, content) entry of a conversation history, in the shape
// the generation call consumes.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationSummary is one row of the per-user conversation listing.
type ConversationSummary struct {
	ID            uint       `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	MessageCount  int64      `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at"`
	Preview       string     `json:"preview"`
}

var ErrInvalidRole = errors.New("invalid message role")

// ConversationStore persists conversations and their ordered messages.
type ConversationStore struct {
	db *gorm.DB
}

func NewConversationStore(db *gorm.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

func (s *ConversationStore) CreateConversation(userID uint) (*Conversation, error) {
	conv := &Conversation{UserID: userID}
	if err := s.db.Create(conv).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (s *ConversationStore) GetConversation(id uint) (*Conversation, error) {
	var conv Conversation
	if err := s.db.First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &conv, nil
}

// AppendMessage adds one turn to a conversation. The role must be in the
// closed user/assistant set; the check constraint on messages.role backs this
// up at the storage level.
func (s *ConversationStore) AppendMessage(conversationID uint, role, content string) (*Message, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	msg := &Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return msg, nil
}

// GetHistory returns the (role, content) turns of a conversation in creation
// order. A conversation with no messages yields an empty slice.
func (s *ConversationStore) GetHistory(conversationID uint) ([]Turn, error) {
	var turns []Turn
	err := s.db.Model(&Message{}).
		Select("role, content").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Scan(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation history: %w", err)
	}
	return turns, nil
}

const previewLen = 100

// ListConversations returns the user's conversations, most recently active
// first (creation time stands in for activity on empty threads). Each summary
// carries the message count, the last message time and a 100-character
// preview of the first user-authored message. Aggregation happens in Go: the
// sqlite driver loses the column type on aggregate timestamp expressions, so
// a MAX(created_at) join cannot be scanned into time.Time.
func (s *ConversationStore) ListConversations(userID uint) ([]ConversationSummary, error) {
	var convs []Conversation
	if err := s.db.Where("user_id = ?", userID).Find(&convs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	if len(convs) == 0 {
		return []ConversationSummary{}, nil
	}

	ids := make([]uint, 0, len(convs))
	byID := make(map[uint]*ConversationSummary, len(convs))
	summaries := make([]ConversationSummary, len(convs))
	for i, conv := range convs {
		ids = append(ids, conv.ID)
		summaries[i] = ConversationSummary{ID: conv.ID, CreatedAt: conv.CreatedAt}
		byID[conv.ID] = &summaries[i]
	}

	var msgs []Message
	err := s.db.Where("conversation_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	for i := range msgs {
		msg := &msgs[i]
		summary := byID[msg.ConversationID]
		summary.MessageCount++
		createdAt := msg.CreatedAt
		summary.LastMessageAt = &createdAt
		if summary.Preview == "" && msg.Role == RoleUser {
			summary.Preview = truncate(msg.Content, previewLen)
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return lastActivity(&summaries[i]).After(lastActivity(&summaries[j]))
	})
	return summaries, nil
}

func lastActivity(s *ConversationSummary) time.Time {
	if s.LastMessageAt != nil {
		return *s.LastMessageAt
	}
	return s.CreatedAt
}

func truncate(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}

// GetWithMessages returns a conversation and all its messages in creation
// order, or nil when the conversation does not exist.
func (s *ConversationStore) GetWithMessages(conversationID uint) (*Conversation, error) {
	conv, err := s.GetConversation(conversationID)
	if err != nil || conv == nil {
		return conv, err
	}
	err = s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&conv.Messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return conv, nil
}

// DeleteConversation removes a conversation and all its messages in one
// transaction, so an append racing the delete can never leave orphan rows.
// It reports whether a conversation row was actually removed.
func (s *ConversationStore) DeleteConversation(conversationID uint) (bool, error) {
	var removed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", conversationID).
			Delete(&Message{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Conversation{}, conversationID)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete conversation: %w", err)
	}
	return removed, nil
}
