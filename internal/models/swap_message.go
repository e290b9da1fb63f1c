package models

import "time"

// SwapMessage is one chat message inside a swap request's conversation.
// Messages are append-only; only the read flag mutates after creation.
type SwapMessage struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SwapRequestID uint       `gorm:"not null;index" json:"swap_request_id"`
	SenderID      uint       `gorm:"not null;index" json:"sender_id"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	IsRead        bool       `gorm:"default:false" json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	SwapRequest *SwapRequest `gorm:"foreignKey:SwapRequestID" json:"swap_request,omitempty"`
	Sender      *User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapMessage) TableName() string {
	return "swap_messages"
}
