package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalUsers    int64                        `json:"total_users"`
	TotalSkills   int64                        `json:"total_skills"`
	TotalRatings  int64                        `json:"total_ratings"`
	AverageRating float64                      `json:"average_rating"`
	SwapsByStatus map[models.SwapStatus]int64  `json:"swaps_by_status"`
	SkillsByCat   map[string]int64             `json:"skills_by_category"`
}

// AdminService provides moderation and platform administration logic.
type AdminService struct {
	userRepo         repository.UserRepository
	skillRepo        repository.SkillRepository
	swapRepo         repository.SwapRepository
	ratingRepo       repository.RatingRepository
	announcementRepo repository.AnnouncementRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	swapRepo repository.SwapRepository,
	ratingRepo repository.RatingRepository,
	announcementRepo repository.AnnouncementRepository,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		skillRepo:        skillRepo,
		swapRepo:         swapRepo,
		ratingRepo:       ratingRepo,
		announcementRepo: announcementRepo,
	}
}

// ListUsers returns every account for the admin console, optionally
// filtered by a username/email/display-name search.
func (s *AdminService) ListUsers(ctx context.Context, query string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.ListAll(ctx, query, page, pageSize)
}

// SetUserBanned bans or unbans an account. Admins cannot ban themselves
// or other admins.
func (s *AdminService) SetUserBanned(ctx context.Context, adminID, userID uint, banned bool) error {
	if adminID == userID {
		return models.NewValidationError("You cannot ban yourself")
	}
	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.IsAdmin && banned {
		return models.NewForbiddenError("Admins cannot be banned; demote first")
	}
	return s.userRepo.SetBanned(ctx, userID, banned)
}

// SetUserAdmin promotes or demotes an account. Self-demotion is blocked so
// the platform cannot lose its last admin by accident.
func (s *AdminService) SetUserAdmin(ctx context.Context, adminID, userID uint, admin bool) error {
	if adminID == userID && !admin {
		return models.NewValidationError("You cannot demote yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SetAdmin(ctx, userID, admin)
}

// ListPendingSkills returns the approval queue, oldest first.
func (s *AdminService) ListPendingSkills(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error) {
	return s.skillRepo.ListPendingApproval(ctx, page, pageSize)
}

// ApproveSkill makes a skill visible in browse and usable in swaps.
func (s *AdminService) ApproveSkill(ctx context.Context, skillID uint) error {
	return s.skillRepo.SetApproved(ctx, skillID, true)
}

// RejectSkill removes an inappropriate or spammy skill listing. The row is
// dropped for good; swap requests referencing it keep their stale IDs.
func (s *AdminService) RejectSkill(ctx context.Context, skillID uint) error {
	if _, err := s.skillRepo.GetByID(ctx, skillID); err != nil {
		return err
	}
	return s.skillRepo.HardDelete(ctx, skillID)
}

// ListSwaps returns swaps platform-wide, optionally filtered by status.
func (s *AdminService) ListSwaps(ctx context.Context, status models.SwapStatus, page, pageSize int) ([]models.SwapRequest, int64, error) {
	if status != "" && !validSwapStatus(status) {
		return nil, 0, models.NewValidationError("unknown swap status filter")
	}
	return s.swapRepo.ListAll(ctx, status, page, pageSize)
}

// GetPlatformStats assembles the dashboard summary.
func (s *AdminService) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.skillRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.ratingRepo.GlobalAverage(ctx)
	if err != nil {
		return nil, err
	}
	swaps, err := s.swapRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.skillRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:    users,
		TotalSkills:   skills,
		TotalRatings:  ratings,
		AverageRating: avg,
		SwapsByStatus: swaps,
		SkillsByCat:   cats,
	}, nil
}

// CreateAnnouncement publishes a platform-wide message.
func (s *AdminService) CreateAnnouncement(ctx context.Context, adminID uint, title, body string) (*models.Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.NewValidationError("announcement title is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("announcement body is required")
	}

	announcement := &models.Announcement{
		Title:       title,
		Body:        body,
		Active:      true,
		CreatedByID: adminID,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// SetAnnouncementActive toggles an announcement's visibility.
func (s *AdminService) SetAnnouncementActive(ctx context.Context, id uint, active bool) error {
	return s.announcementRepo.SetActive(ctx, id, active)
}

// ListAnnouncements returns every announcement for the admin console.
func (s *AdminService) ListAnnouncements(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error) {
	return s.announcementRepo.ListAll(ctx, page, pageSize)
}

// ActiveAnnouncements returns the banner feed shown to all users.
func (s *AdminService) ActiveAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return s.announcementRepo.ListActive(ctx)
}
