package models

import (
	"time"
)

// SwapStatus represents the lifecycle state of a proposed skill exchange.
type SwapStatus string

const (
	// SwapStatusPending indicates the request awaits the provider's decision.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the provider agreed to the exchange.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusCompleted indicates a participant marked the exchange done.
	SwapStatusCompleted SwapStatus = "completed"
	// SwapStatusCancelled indicates the requester withdrew a pending request.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusRejected indicates the provider declined a pending request.
	SwapStatusRejected SwapStatus = "rejected"
)

// Terminal reports whether no further transition is allowed out of s.
func (s SwapStatus) Terminal() bool {
	switch s {
	case SwapStatusCompleted, SwapStatusCancelled, SwapStatusRejected:
		return true
	}
	return false
}

// SwapRequest is a proposed exchange of one skill for another between two
// users. The requester offers OfferedSkill (one of their own) in return for
// WantedSkill (one of the provider's).
//
// The composite index is partial on status='pending' (created by a manual
// migration, postgres only): at most one open ask per (requester, provider,
// skill pair).
type SwapRequest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RequesterID    uint       `gorm:"not null;index" json:"requester_id"`
	ProviderID     uint       `gorm:"not null;index" json:"provider_id"`
	OfferedSkillID uint       `gorm:"not null" json:"offered_skill_id"`
	WantedSkillID  uint       `gorm:"not null" json:"wanted_skill_id"`
	Message        string     `gorm:"type:text" json:"message"`
	Status         SwapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Requester    *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Provider     *User  `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	OfferedSkill *Skill `gorm:"foreignKey:OfferedSkillID" json:"offered_skill,omitempty"`
	WantedSkill  *Skill `gorm:"foreignKey:WantedSkillID" json:"wanted_skill,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsParticipant reports whether userID is the requester or provider.
func (r *SwapRequest) IsParticipant(userID uint) bool {
	return r.RequesterID == userID || r.ProviderID == userID
}

// OtherParticipant returns the counterpart of userID on this swap.
func (r *SwapRequest) OtherParticipant(userID uint) uint {
	if r.RequesterID == userID {
		return r.ProviderID
	}
	return r.RequesterID
}
