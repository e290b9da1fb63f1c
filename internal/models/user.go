// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the SkillSwap marketplace. Authentication
// identity and the public profile live on the same row; Password never
// serializes.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	DisplayName  string `gorm:"size:120" json:"display_name"`
	Location     string `gorm:"size:120" json:"location"`
	Bio          string `gorm:"type:text" json:"bio"`
	Avatar       string `json:"avatar"`
	Availability string `gorm:"size:255" json:"availability"` // comma-separated tags, e.g. "weekends,evenings"
	IsPublic     bool   `json:"is_public"` // set true at signup; no column default so an explicit false persists
	IsBanned     bool   `gorm:"default:false" json:"is_banned"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	// AverageRating and CompletedSwaps are system-owned aggregates,
	// recomputed inside the rating insert transaction.
	AverageRating  float64 `gorm:"default:0" json:"average_rating"`
	CompletedSwaps int     `gorm:"default:0" json:"completed_swaps"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Skills []Skill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}
