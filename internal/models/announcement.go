package models

import "time"

// Announcement is an admin broadcast shown to all users while active.
type Announcement struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"size:200;not null" json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`
	Active bool   `gorm:"index" json:"active"` // set true at creation

	CreatedByID uint      `gorm:"not null" json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Announcement) TableName() string {
	return "announcements"
}
