package server

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/page_size query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

const (
	maxPageSize = 100
)

// parsePagination extracts page and page_size query parameters with the given
// default page size.
func parsePagination(c *fiber.Ctx, defaultSize int) Pagination {
	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}

	size := c.QueryInt("page_size", defaultSize)
	if size <= 0 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: size,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "userId" -> "Invalid user ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "swapId" -> "swap ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// mapServiceError translates an AppError code into an HTTP status and writes
// the error response. Unknown errors become 500.
func mapServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		case "CONFLICT":
			status = fiber.StatusConflict
		}
	}

	return models.RespondWithError(c, status, err)
}

// isAdmin checks whether the given user has admin privileges.
func (s *Server) isAdmin(c *fiber.Ctx, userID uint) (bool, error) {
	return s.isAdminByUserID(c.Context(), userID)
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	if s.db == nil {
		return false, nil
	}
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *Server) isBannedByUserID(ctx context.Context, userID uint) (bool, error) {
	if s.db == nil {
		return false, nil
	}
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_banned").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsBanned, nil
}

// Lazy service accessors let handler tests construct a Server with just the
// mocked repository they exercise.

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo)
	}
	return s.userService
}

func (s *Server) skillSvc() *service.SkillService {
	if s.skillService == nil {
		s.skillService = service.NewSkillService(s.skillRepo, s.userRepo)
	}
	return s.skillService
}

func (s *Server) swapSvc() *service.SwapService {
	if s.swapService == nil {
		s.swapService = service.NewSwapService(s.swapRepo, s.skillRepo, s.userRepo)
	}
	return s.swapService
}

func (s *Server) chatSvc() *service.ChatService {
	if s.chatService == nil {
		s.chatService = service.NewChatService(s.messageRepo, s.swapRepo)
	}
	return s.chatService
}

func (s *Server) ratingSvc() *service.RatingService {
	if s.ratingService == nil {
		s.ratingService = service.NewRatingService(s.ratingRepo, s.swapRepo)
	}
	return s.ratingService
}

func (s *Server) adminSvc() *service.AdminService {
	if s.adminService == nil {
		s.adminService = service.NewAdminService(
			s.userRepo, s.skillRepo, s.swapRepo, s.ratingRepo, s.announcementRepo)
	}
	return s.adminService
}

func (s *Server) reportSvc() *service.ReportService {
	if s.reportService == nil {
		s.reportService = service.NewReportService(s.swapRepo, s.userRepo, s.skillRepo)
	}
	return s.reportService
}
