package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ValidRole reports whether role is in the closed set of speaker tags.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint      `gorm:"not null;index:idx_conversation_id_created_at" json:"conversation_id"`
	Role           string    `gorm:"type:varchar(64);not null;check:chk_messages_role,role IN ('user','assistant')" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_conversation_id_created_at" json:"created_at"`
}
