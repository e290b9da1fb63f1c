package repository

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, username string, mutate ...func(*models.User)) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "hashed-password",
		DisplayName: username,
		IsPublic:    true,
	}
	for _, fn := range mutate {
		fn(user)
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestSkill(t *testing.T, userID uint, title, category string, skillType models.SkillType, approved bool) *models.Skill {
	t.Helper()
	skill := &models.Skill{
		UserID:   userID,
		Title:    title,
		Category: category,
		Type:     skillType,
		Approved: approved,
	}
	require.NoError(t, testDB.Create(skill).Error)
	return skill
}

func createTestSwap(t *testing.T, requester, provider *models.User, offered, wanted *models.Skill, status models.SwapStatus) *models.SwapRequest {
	t.Helper()
	swap := &models.SwapRequest{
		RequesterID:    requester.ID,
		ProviderID:     provider.ID,
		OfferedSkillID: offered.ID,
		WantedSkillID:  wanted.ID,
		Status:         status,
	}
	require.NoError(t, testDB.Create(swap).Error)
	return swap
}
