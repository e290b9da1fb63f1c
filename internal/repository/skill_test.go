package repository

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillRepositoryApprovalQueue(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "learner")
	createTestSkill(t, user.ID, "Watercolor basics", "art", models.SkillTypeOffered, false)
	createTestSkill(t, user.ID, "Sourdough baking", "cooking", models.SkillTypeOffered, true)

	pending, total, err := repo.ListPendingApproval(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, "Watercolor basics", pending[0].Title)

	require.NoError(t, repo.SetApproved(ctx, pending[0].ID, true))

	_, total, err = repo.ListPendingApproval(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestSkillRepositoryGetByUser(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "polyglot")
	createTestSkill(t, user.ID, "French", "language", models.SkillTypeOffered, true)
	createTestSkill(t, user.ID, "Japanese", "language", models.SkillTypeWanted, false)

	all, err := repo.GetByUser(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := repo.GetByUser(ctx, user.ID, true)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "French", approved[0].Title)
}

func TestSkillRepositoryDelete(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "tidy")
	skill := createTestSkill(t, user.ID, "Origami", "crafts", models.SkillTypeOffered, true)

	require.NoError(t, repo.Delete(ctx, skill.ID))

	_, err := repo.GetByID(ctx, skill.ID)
	require.Error(t, err)

	// Owner deletes are soft; the row survives for history.
	var count int64
	require.NoError(t, testDB.Unscoped().Model(&models.Skill{}).Where("id = ?", skill.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSkillRepositoryHardDelete(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	requester, provider, offered, wanted := swapFixture(t)
	swap := createTestSwap(t, requester, provider, offered, wanted, models.SwapStatusPending)

	require.NoError(t, repo.HardDelete(ctx, wanted.ID))

	// Rejection leaves no soft-deleted residue behind.
	var count int64
	require.NoError(t, testDB.Unscoped().Model(&models.Skill{}).Where("id = ?", wanted.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Swap requests keep their now dangling skill reference.
	var orphan models.SwapRequest
	require.NoError(t, testDB.First(&orphan, swap.ID).Error)
	assert.Equal(t, wanted.ID, orphan.WantedSkillID)
}

func TestSkillRepositoryCountByCategory(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "counts")
	createTestSkill(t, user.ID, "Piano", "music", models.SkillTypeOffered, true)
	createTestSkill(t, user.ID, "Violin", "music", models.SkillTypeWanted, true)
	createTestSkill(t, user.ID, "Ceramics", "art", models.SkillTypeOffered, true)

	counts, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts["music"])
	assert.EqualValues(t, 1, counts["art"])
}

func TestSkillRepositoryBrowse(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	public := createTestUser(t, "browse-public")
	private := createTestUser(t, "browse-private", func(u *models.User) { u.IsPublic = false })
	banned := createTestUser(t, "browse-banned", func(u *models.User) { u.IsBanned = true })

	createTestSkill(t, public.ID, "Jazz piano", "music", models.SkillTypeOffered, true)
	createTestSkill(t, public.ID, "Oil painting", "art", models.SkillTypeOffered, true)
	createTestSkill(t, public.ID, "Hidden draft", "art", models.SkillTypeOffered, false)
	createTestSkill(t, private.ID, "Private piano", "music", models.SkillTypeOffered, true)
	createTestSkill(t, banned.ID, "Banned piano", "music", models.SkillTypeOffered, true)

	all, total, err := repo.Browse(ctx, SkillBrowseFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	music, total, err := repo.Browse(ctx, SkillBrowseFilter{Category: "music", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, music, 1)
	assert.Equal(t, "Jazz piano", music[0].Title)

	matched, _, err := repo.Browse(ctx, SkillBrowseFilter{Query: "painting", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Oil painting", matched[0].Title)
}

func TestSkillRepositoryListAll(t *testing.T) {
	truncateTables(t)
	repo := NewSkillRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "lister")
	createTestSkill(t, user.ID, "One", "other", models.SkillTypeOffered, true)
	createTestSkill(t, user.ID, "Two", "other", models.SkillTypeWanted, false)

	skills, total, err := repo.ListAll(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, skills, 1)
	assert.Equal(t, "One", skills[0].Title)
}
