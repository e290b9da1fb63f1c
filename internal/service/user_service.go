package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	DisplayName  *string
	Location     *string
	Bio          *string
	Availability *string
	IsPublic     *bool
}

// UserService provides profile and directory business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns a user profile. Non-owners only see public,
// non-banned profiles.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if viewerID != userID {
		if user.IsBanned || !user.IsPublic {
			return nil, models.NewNotFoundError("User", userID)
		}
		visible := user.Skills[:0]
		for _, skill := range user.Skills {
			if skill.Approved {
				visible = append(visible, skill)
			}
		}
		user.Skills = visible
	}
	return user, nil
}

// UpdateProfile applies the caller's profile edits.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if len(name) > 120 {
			return nil, models.NewValidationError("display name must be at most 120 characters")
		}
		fields["display_name"] = name
	}
	if update.Location != nil {
		if len(*update.Location) > 120 {
			return nil, models.NewValidationError("location must be at most 120 characters")
		}
		fields["location"] = *update.Location
	}
	if update.Bio != nil {
		if len(*update.Bio) > validation.MaxBioLength {
			return nil, models.NewValidationError("bio is too long")
		}
		fields["bio"] = *update.Bio
	}
	if update.Availability != nil {
		fields["availability"] = normalizeAvailability(*update.Availability)
	}
	if update.IsPublic != nil {
		fields["is_public"] = *update.IsPublic
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(ctx, userID)
}

// SetAvatar stores the avatar object key on the profile.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, objectKey string) error {
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"avatar": objectKey})
}

// Browse returns the public directory page for the filter.
func (s *UserService) Browse(ctx context.Context, filter repository.UserBrowseFilter) ([]models.User, int64, error) {
	if filter.Category != "" && !models.ValidSkillCategory(filter.Category) {
		return nil, 0, models.NewValidationError("unknown skill category")
	}
	return s.userRepo.Browse(ctx, filter)
}

func normalizeAvailability(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
