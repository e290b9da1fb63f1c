package models

import (
	"time"

	"gorm.io/gorm"
)

// SkillType distinguishes skills a user teaches from skills they want to learn.
type SkillType string

const (
	// SkillTypeOffered marks a skill the owner can teach.
	SkillTypeOffered SkillType = "offered"
	// SkillTypeWanted marks a skill the owner wants to learn.
	SkillTypeWanted SkillType = "wanted"
)

// SkillCategories is the closed set of accepted categories.
var SkillCategories = []string{
	"technology",
	"music",
	"cooking",
	"language",
	"art",
	"sports",
	"crafts",
	"business",
	"other",
}

// ValidSkillCategory reports whether category is one of the closed enum values.
func ValidSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Skill is a teachable or desired competency entry owned by a user profile.
// New and edited skills stay hidden from browse until an admin approves them.
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:40;not null;index" json:"category"`
	Type        SkillType `gorm:"type:varchar(10);not null;index" json:"type"`
	Approved    bool      `gorm:"default:false;index" json:"approved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}
