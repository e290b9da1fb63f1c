package server

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdminUsers handles GET /api/admin/users
// Lists every account, banned and private included, with optional search.
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 25)

	users, total, err := s.adminSvc().ListUsers(c.Context(), c.Query("q"), p.Page, p.PageSize)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":     users,
		"total":     total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, true)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, false)
}

func (s *Server) setUserBanned(c *fiber.Ctx, banned bool) error {
	adminID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminSvc().SetUserBanned(c.Context(), adminID, userID, banned); err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateUser(c.Context(), userID)

	return c.JSON(fiber.Map{
		"user_id":   userID,
		"is_banned": banned,
	})
}

// PromoteUser handles POST /api/admin/users/:id/promote
func (s *Server) PromoteUser(c *fiber.Ctx) error {
	return s.setUserAdmin(c, true)
}

// DemoteUser handles POST /api/admin/users/:id/demote
func (s *Server) DemoteUser(c *fiber.Ctx) error {
	return s.setUserAdmin(c, false)
}

func (s *Server) setUserAdmin(c *fiber.Ctx, admin bool) error {
	adminID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminSvc().SetUserAdmin(c.Context(), adminID, userID, admin); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id":  userID,
		"is_admin": admin,
	})
}

// GetPendingSkills handles GET /api/admin/skills/pending
func (s *Server) GetPendingSkills(c *fiber.Ctx) error {
	p := parsePagination(c, 25)

	skills, total, err := s.adminSvc().ListPendingSkills(c.Context(), p.Page, p.PageSize)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skills":    skills,
		"total":     total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// ApproveSkill handles POST /api/admin/skills/:id/approve
func (s *Server) ApproveSkill(c *fiber.Ctx) error {
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminSvc().ApproveSkill(c.Context(), skillID); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skill_id": skillID,
		"approved": true,
	})
}

// RejectSkill handles POST /api/admin/skills/:id/reject
// Rejection removes the listing entirely rather than leaving it in limbo.
func (s *Server) RejectSkill(c *fiber.Ctx) error {
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminSvc().RejectSkill(c.Context(), skillID); err != nil {
		return mapServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAdminSwaps handles GET /api/admin/swaps
func (s *Server) GetAdminSwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 25)
	status := models.SwapStatus(c.Query("status"))

	swaps, total, err := s.adminSvc().ListSwaps(c.Context(), status, p.Page, p.PageSize)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps":     swaps,
		"total":     total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// GetPlatformStats handles GET /api/admin/stats
// Stats are cached briefly; the dashboard polls and the counts are expensive.
func (s *Server) GetPlatformStats(c *fiber.Ctx) error {
	stats, err := cache.Aside(c.Context(), cache.PlatformStatsKey, cache.StatsTTL,
		func(ctx context.Context) (*service.PlatformStats, error) {
			return s.adminSvc().GetPlatformStats(ctx)
		})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(stats)
}

// GetAdminAnnouncements handles GET /api/admin/announcements
func (s *Server) GetAdminAnnouncements(c *fiber.Ctx) error {
	p := parsePagination(c, 25)

	announcements, total, err := s.adminSvc().ListAnnouncements(c.Context(), p.Page, p.PageSize)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"announcements": announcements,
		"total":         total,
		"page":          p.Page,
		"page_size":     p.PageSize,
	})
}

// CreateAnnouncement handles POST /api/admin/announcements
// New announcements start active and fan out to every connected user.
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	announcement, err := s.adminSvc().CreateAnnouncement(c.Context(), adminID, req.Title, req.Body)
	if err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateAnnouncements(c.Context())
	s.publishBroadcastEvent(EventAnnouncementPublished, map[string]interface{}{
		"announcement": announcement,
	})

	return c.Status(fiber.StatusCreated).JSON(announcement)
}

// ToggleAnnouncement handles POST /api/admin/announcements/:id/toggle
func (s *Server) ToggleAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	announcement, err := s.announcementRepo.GetByID(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.adminSvc().SetAnnouncementActive(c.Context(), id, !announcement.Active); err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateAnnouncements(c.Context())

	return c.JSON(fiber.Map{
		"id":     id,
		"active": !announcement.Active,
	})
}

// GetActiveAnnouncements handles GET /api/announcements (any authed user).
func (s *Server) GetActiveAnnouncements(c *fiber.Ctx) error {
	announcements, err := cache.Aside(c.Context(), cache.AnnouncementsKey, cache.AnnouncementsTTL,
		func(ctx context.Context) ([]models.Announcement, error) {
			return s.adminSvc().ActiveAnnouncements(ctx)
		})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"announcements": announcements,
	})
}

// ExportReport handles GET /api/admin/reports/export?entity=swaps|users|skills
// Streams a CSV download.
func (s *Server) ExportReport(c *fiber.Ctx) error {
	entity := c.Query("entity", "swaps")

	var buf bytes.Buffer
	var err error
	switch entity {
	case "swaps":
		err = s.reportSvc().ExportSwapsCSV(c.Context(), &buf, models.SwapStatus(c.Query("status")))
	case "users":
		err = s.reportSvc().ExportUsersCSV(c.Context(), &buf)
	case "skills":
		err = s.reportSvc().ExportSkillsCSV(c.Context(), &buf)
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("entity must be swaps, users or skills"))
	}
	if err != nil {
		return mapServiceError(c, err)
	}

	filename := fmt.Sprintf("%s-%s.csv", entity, time.Now().UTC().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
