package models

import "time"

// Rating is one-time feedback from a swap participant about their partner.
// The (swap_request_id, rater_id) unique index is the authoritative guard
// against duplicate ratings; service-level pre-checks only improve the error.
type Rating struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SwapRequestID uint      `gorm:"not null;uniqueIndex:idx_rating_swap_rater" json:"swap_request_id"`
	RaterID       uint      `gorm:"not null;uniqueIndex:idx_rating_swap_rater" json:"rater_id"`
	RatedID       uint      `gorm:"not null;index" json:"rated_id"`
	Score         int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`

	SwapRequest *SwapRequest `gorm:"foreignKey:SwapRequestID" json:"swap_request,omitempty"`
	Rater       *User        `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Rated       *User        `gorm:"foreignKey:RatedID" json:"rated,omitempty"`
}

// TableName specifies the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}
