package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SkillService provides skill listing business logic.
type SkillService struct {
	skillRepo repository.SkillRepository
	userRepo  repository.UserRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository, userRepo repository.UserRepository) *SkillService {
	return &SkillService{
		skillRepo: skillRepo,
		userRepo:  userRepo,
	}
}

// CreateSkill adds an unapproved skill to the caller's profile.
func (s *SkillService) CreateSkill(ctx context.Context, userID uint, title, description, category string, skillType models.SkillType) (*models.Skill, error) {
	title = strings.TrimSpace(title)
	if err := validation.ValidateSkill(title, description, category, skillType); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	skill := &models.Skill{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Type:        skillType,
		Approved:    false,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// UpdateSkill edits one of the caller's skills. Any edit sends the skill
// back through the approval queue.
func (s *SkillService) UpdateSkill(ctx context.Context, userID, skillID uint, title, description, category string, skillType models.SkillType) (*models.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if skill.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own skills")
	}

	title = strings.TrimSpace(title)
	if err := validation.ValidateSkill(title, description, category, skillType); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	skill.Title = title
	skill.Description = description
	skill.Category = category
	skill.Type = skillType
	skill.Approved = false
	skill.User = nil

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// DeleteSkill removes one of the caller's skills.
func (s *SkillService) DeleteSkill(ctx context.Context, userID, skillID uint) error {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	if skill.UserID != userID {
		return models.NewForbiddenError("You can only delete your own skills")
	}
	return s.skillRepo.Delete(ctx, skillID)
}

// GetUserSkills lists a profile's skills. Viewers other than the owner see
// approved skills only.
func (s *SkillService) GetUserSkills(ctx context.Context, viewerID, ownerID uint) ([]models.Skill, error) {
	if viewerID != ownerID {
		owner, err := s.userRepo.GetByID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if owner.IsBanned || !owner.IsPublic {
			return nil, models.NewNotFoundError("User", ownerID)
		}
		return s.skillRepo.GetByUser(ctx, ownerID, true)
	}
	return s.skillRepo.GetByUser(ctx, ownerID, false)
}

// Browse lists approved skills from public, unbanned owners.
func (s *SkillService) Browse(ctx context.Context, filter repository.SkillBrowseFilter) ([]models.Skill, int64, error) {
	if filter.Category != "" && !models.ValidSkillCategory(filter.Category) {
		return nil, 0, models.NewValidationError("unknown skill category")
	}
	if filter.Type != "" && filter.Type != models.SkillTypeOffered && filter.Type != models.SkillTypeWanted {
		return nil, 0, models.NewValidationError("skill type must be offered or wanted")
	}
	return s.skillRepo.Browse(ctx, filter)
}

// Categories returns the closed category enum.
func (s *SkillService) Categories() []string {
	return models.SkillCategories
}
