package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"skillswap/internal/models"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "correcthorse1", false},
		{"too short", "abc1", true},
		{"too long", strings.Repeat("a1", 70), true},
		{"no digit", "onlyletters", true},
		{"no letter", "12345678", true},
		{"unicode letters accepted", "pässwörter9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("maya.codes"))
	assert.NoError(t, ValidateUsername("user_42"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername(strings.Repeat("x", 31)))
	assert.Error(t, ValidateUsername("bad name"))
	assert.Error(t, ValidateUsername("nope!"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("maya@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("two@@example.com"))
}

func TestValidateSkill(t *testing.T) {
	assert.NoError(t, ValidateSkill("Guitar lessons", "Beginner friendly", "music", models.SkillTypeOffered))
	assert.Error(t, ValidateSkill("", "", "music", models.SkillTypeOffered))
	assert.Error(t, ValidateSkill(strings.Repeat("t", 121), "", "music", models.SkillTypeOffered))
	assert.Error(t, ValidateSkill("Guitar", "", "underwater-basket-weaving", models.SkillTypeOffered))
	assert.Error(t, ValidateSkill("Guitar", "", "music", models.SkillType("maybe")))
}

func TestValidateRatingScore(t *testing.T) {
	for score := 1; score <= 5; score++ {
		assert.NoError(t, ValidateRatingScore(score))
	}
	assert.Error(t, ValidateRatingScore(0))
	assert.Error(t, ValidateRatingScore(6))
}

func TestValidateMessageContent(t *testing.T) {
	assert.NoError(t, ValidateMessageContent("hello there"))
	assert.Error(t, ValidateMessageContent("   "))
	assert.Error(t, ValidateMessageContent(strings.Repeat("m", MaxMessageLength+1)))
}
