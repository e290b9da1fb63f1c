// Package validation contains input validation rules shared by handlers
// and services.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"skillswap/internal/models"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MaxSkillTitleLen  = 120
	MaxSkillDescLen   = 2000
	MaxBioLength      = 1000
	MaxFeedbackLength = 2000
	MaxMessageLength  = 4000
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidatePassword enforces the password policy: length bounds plus at
// least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters long", MaxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidateUsername checks length and allowed characters.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters long", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("username may only contain letters, digits, underscores, dots and hyphens")
	}
	return nil
}

// ValidateEmail performs a shallow syntactic check. Deliverability is
// not verified.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}

// ValidateSkill checks a skill's user-supplied fields.
func ValidateSkill(title, description, category string, skillType models.SkillType) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("skill title is required")
	}
	if len(title) > MaxSkillTitleLen {
		return fmt.Errorf("skill title must be at most %d characters", MaxSkillTitleLen)
	}
	if len(description) > MaxSkillDescLen {
		return fmt.Errorf("skill description must be at most %d characters", MaxSkillDescLen)
	}
	if !models.ValidSkillCategory(category) {
		return fmt.Errorf("unknown skill category %q", category)
	}
	if skillType != models.SkillTypeOffered && skillType != models.SkillTypeWanted {
		return fmt.Errorf("skill type must be %q or %q", models.SkillTypeOffered, models.SkillTypeWanted)
	}
	return nil
}

// ValidateRatingScore bounds a rating to the 1-5 star scale.
func ValidateRatingScore(score int) error {
	if score < 1 || score > 5 {
		return errors.New("rating score must be between 1 and 5")
	}
	return nil
}

// ValidateMessageContent rejects empty and oversized chat messages.
func ValidateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("message content is required")
	}
	if len(content) > MaxMessageLength {
		return fmt.Errorf("message content must be at most %d characters", MaxMessageLength)
	}
	return nil
}
