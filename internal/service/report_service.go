package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// reportPageSize bounds memory per page while streaming exports.
const reportPageSize = 500

// ReportService writes admin CSV exports.
type ReportService struct {
	swapRepo  repository.SwapRepository
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

// NewReportService returns a new ReportService.
func NewReportService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, skillRepo repository.SkillRepository) *ReportService {
	return &ReportService{
		swapRepo:  swapRepo,
		userRepo:  userRepo,
		skillRepo: skillRepo,
	}
}

// ExportSwapsCSV streams every swap (optionally filtered by status) to w
// as CSV, paging through the table rather than loading it whole.
func (s *ReportService) ExportSwapsCSV(ctx context.Context, w io.Writer, status models.SwapStatus) error {
	if status != "" && !validSwapStatus(status) {
		return models.NewValidationError("unknown swap status filter")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "status", "requester", "provider",
		"offered_skill", "wanted_skill", "created_at", "accepted_at", "completed_at",
	}); err != nil {
		return models.NewInternalError(err)
	}

	for page := 1; ; page++ {
		swaps, _, err := s.swapRepo.ListAll(ctx, status, page, reportPageSize)
		if err != nil {
			return err
		}
		if len(swaps) == 0 {
			break
		}

		for _, swap := range swaps {
			row := []string{
				strconv.FormatUint(uint64(swap.ID), 10),
				string(swap.Status),
				usernameOf(swap.Requester),
				usernameOf(swap.Provider),
				skillTitleOf(swap.OfferedSkill),
				skillTitleOf(swap.WantedSkill),
				swap.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
				timePtrString(swap.AcceptedAt),
				timePtrString(swap.CompletedAt),
			}
			if err := cw.Write(row); err != nil {
				return models.NewInternalError(err)
			}
		}

		if len(swaps) < reportPageSize {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ExportUsersCSV streams the member roster to w as CSV.
func (s *ReportService) ExportUsersCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "username", "email", "display_name", "is_public", "is_banned", "is_admin",
		"average_rating", "completed_swaps", "joined_at",
	}); err != nil {
		return models.NewInternalError(err)
	}

	for page := 1; ; page++ {
		users, _, err := s.userRepo.ListAll(ctx, "", page, reportPageSize)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			break
		}

		for _, user := range users {
			row := []string{
				strconv.FormatUint(uint64(user.ID), 10),
				user.Username,
				user.Email,
				user.DisplayName,
				strconv.FormatBool(user.IsPublic),
				strconv.FormatBool(user.IsBanned),
				strconv.FormatBool(user.IsAdmin),
				strconv.FormatFloat(user.AverageRating, 'f', 2, 64),
				strconv.Itoa(user.CompletedSwaps),
				user.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			}
			if err := cw.Write(row); err != nil {
				return models.NewInternalError(err)
			}
		}

		if len(users) < reportPageSize {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ExportSkillsCSV streams the whole skill catalog, including unapproved
// entries, to w as CSV.
func (s *ReportService) ExportSkillsCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "user_id", "title", "category", "type", "approved", "created_at",
	}); err != nil {
		return models.NewInternalError(err)
	}

	for page := 1; ; page++ {
		skills, _, err := s.skillRepo.ListAll(ctx, page, reportPageSize)
		if err != nil {
			return err
		}
		if len(skills) == 0 {
			break
		}

		for _, skill := range skills {
			row := []string{
				strconv.FormatUint(uint64(skill.ID), 10),
				strconv.FormatUint(uint64(skill.UserID), 10),
				skill.Title,
				skill.Category,
				string(skill.Type),
				strconv.FormatBool(skill.Approved),
				skill.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			}
			if err := cw.Write(row); err != nil {
				return models.NewInternalError(err)
			}
		}

		if len(skills) < reportPageSize {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func usernameOf(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.Username
}

func skillTitleOf(skill *models.Skill) string {
	if skill == nil {
		return ""
	}
	return skill.Title
}

func timePtrString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
