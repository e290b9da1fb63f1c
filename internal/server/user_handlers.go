package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"
	"skillswap/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// BrowseUsers handles GET /api/users
// @Summary Browse public profiles
// @Description List public, non-banned member profiles with optional filters
// @Tags users
// @Produce json
// @Param q query string false "Search text"
// @Param category query string false "Skill category"
// @Param availability query string false "Availability tag"
// @Success 200 {object} object{users=[]models.User,total=int,page=int,page_size=int}
// @Router /users [get]
func (s *Server) BrowseUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.UserBrowseFilter{
		Query:        c.Query("q"),
		Category:     c.Query("category"),
		Availability: c.Query("availability"),
		Page:         p.Page,
		PageSize:     p.PageSize,
	}

	users, total, err := s.userSvc().Browse(c.Context(), filter)
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

// SearchUsers handles GET /api/users/search
// Same filter surface as BrowseUsers but rate limited, for type-ahead use.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	return s.BrowseUsers(c)
}

// GetUserProfile handles GET /api/users/:id
// Private profiles are visible only to their owner and admins.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, authed := s.optionalUserID(c)
	if authed && viewerID != userID {
		// Admins see private and banned profiles too
		if admin, aerr := s.isAdminByUserID(c.Context(), viewerID); aerr == nil && admin {
			viewerID = userID
		}
	}

	// The anonymous view is the same for everyone, so it reads through
	// the cache; authenticated viewers bypass it because elevation can
	// change what they see.
	var user *models.User
	if !authed {
		user, err = cache.Aside(c.Context(), cache.UserKey(userID), cache.UserTTL,
			func(ctx context.Context) (*models.User, error) {
				return s.userSvc().GetProfile(ctx, 0, userID)
			})
	} else {
		user, err = s.userSvc().GetProfile(c.Context(), viewerID, userID)
	}
	if err != nil {
		return mapServiceError(c, err)
	}

	s.attachAvatarURL(c, user)
	return c.JSON(user)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userSvc().GetProfile(c.Context(), userID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	s.attachAvatarURL(c, user)
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// Only profile fields may change here; username, email, role and the rating
// aggregates are not client-writable.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		DisplayName  *string `json:"display_name"`
		Location     *string `json:"location"`
		Bio          *string `json:"bio"`
		Availability *string `json:"availability"`
		IsPublic     *bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userSvc().UpdateProfile(c.Context(), userID, service.ProfileUpdate{
		DisplayName:  req.DisplayName,
		Location:     req.Location,
		Bio:          req.Bio,
		Availability: req.Availability,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateUser(c.Context(), userID)

	s.attachAvatarURL(c, user)
	return c.JSON(user)
}

// UploadAvatar handles POST /api/users/me/avatar
// Accepts a multipart "avatar" file, sniffs the real content type server-side
// and stores the object under a fresh key.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	if s.avatars == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("Avatar uploads are not enabled"))
	}

	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An 'avatar' file is required"))
	}
	if fileHeader.Size > storage.MaxAvatarSize {
		return models.RespondWithError(c, fiber.StatusRequestEntityTooLarge,
			models.NewValidationError("Avatar must be 5MB or smaller"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxAvatarSize+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if int64(len(data)) > storage.MaxAvatarSize {
		return models.RespondWithError(c, fiber.StatusRequestEntityTooLarge,
			models.NewValidationError("Avatar must be 5MB or smaller"))
	}

	// Trust the bytes, not the client's Content-Type header
	contentType := http.DetectContentType(data)
	ext, allowed := storage.AllowedAvatarTypes[contentType]
	if !allowed {
		return models.RespondWithError(c, fiber.StatusUnsupportedMediaType,
			models.NewValidationError("Avatar must be a JPEG, PNG or WebP image"))
	}

	key := storage.AvatarKey(userID, ext)
	if err := s.avatars.Put(c.Context(), key,
		bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.userSvc().SetAvatar(c.Context(), userID, key); err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateUser(c.Context(), userID)

	url, err := s.avatars.PresignGet(c.Context(), key, 24*time.Hour)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"avatar":     key,
		"avatar_url": url,
	})
}

// GetUserSkills handles GET /api/users/:id/skills
func (s *Server) GetUserSkills(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, authed := s.optionalUserID(c)

	// Anonymous viewers all get the approved-only listing; cache it.
	var skills []models.Skill
	if !authed {
		skills, err = cache.Aside(c.Context(), cache.UserSkillsKey(ownerID), cache.UserTTL,
			func(ctx context.Context) ([]models.Skill, error) {
				return s.skillSvc().GetUserSkills(ctx, 0, ownerID)
			})
	} else {
		skills, err = s.skillSvc().GetUserSkills(c.Context(), viewerID, ownerID)
	}
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skills": skills,
	})
}

// GetUserRatings handles GET /api/users/:id/ratings
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	ratedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	// Only the common first page is cached; deeper pages go to the source.
	var (
		ratings []models.Rating
		total   int64
	)
	if p.Page == 1 && p.PageSize == 20 {
		page, err := cache.Aside(c.Context(), cache.UserRatingsKey(ratedID), cache.UserTTL,
			func(ctx context.Context) (ratingsPage, error) {
				ratings, total, err := s.ratingSvc().GetUserRatings(ctx, ratedID, p.Page, p.PageSize)
				return ratingsPage{Ratings: ratings, Total: total}, err
			})
		if err != nil {
			return mapServiceError(c, err)
		}
		ratings, total = page.Ratings, page.Total
	} else {
		var err error
		ratings, total, err = s.ratingSvc().GetUserRatings(c.Context(), ratedID, p.Page, p.PageSize)
		if err != nil {
			return mapServiceError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"ratings":   ratings,
		"total":     total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// ratingsPage is the cached shape for a user's first page of ratings.
type ratingsPage struct {
	Ratings []models.Rating `json:"ratings"`
	Total   int64           `json:"total"`
}

// attachAvatarURL swaps the stored object key for a presigned URL in the
// response. Best-effort: a storage hiccup leaves the raw key in place.
func (s *Server) attachAvatarURL(c *fiber.Ctx, user *models.User) {
	if s.avatars == nil || user == nil || user.Avatar == "" {
		return
	}
	if url, err := s.avatars.PresignGet(c.Context(), user.Avatar, 24*time.Hour); err == nil {
		user.Avatar = url
	}
}
