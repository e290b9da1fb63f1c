package server

import (
	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// BrowseSkills handles GET /api/skills
// @Summary Browse the skill catalog
// @Description List approved skills on public profiles, filterable by category, type and text
// @Tags skills
// @Produce json
// @Param category query string false "Skill category"
// @Param type query string false "offered or wanted"
// @Param q query string false "Search text"
// @Success 200 {object} object{skills=[]models.Skill,total=int,page=int,page_size=int}
// @Router /skills [get]
func (s *Server) BrowseSkills(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.SkillBrowseFilter{
		Category: c.Query("category"),
		Type:     models.SkillType(c.Query("type")),
		Query:    c.Query("q"),
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	skills, total, err := s.skillSvc().Browse(c.Context(), filter)
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

// GetSkillCategories handles GET /api/skills/categories
func (s *Server) GetSkillCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": s.skillSvc().Categories(),
	})
}

// CreateSkill handles POST /api/skills
// New skills start unapproved and only enter the public catalog after an
// admin approves them.
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Type        string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillSvc().CreateSkill(c.Context(), userID,
		req.Title, req.Description, req.Category, models.SkillType(req.Type))
	if err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateUser(c.Context(), userID)

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// UpdateSkill handles PUT /api/skills/:id
func (s *Server) UpdateSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Type        string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillSvc().UpdateSkill(c.Context(), userID, skillID,
		req.Title, req.Description, req.Category, models.SkillType(req.Type))
	if err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateUserSkills(c.Context(), userID)

	return c.JSON(skill)
}

// DeleteSkill handles DELETE /api/skills/:id
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.skillSvc().DeleteSkill(c.Context(), userID, skillID); err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateUserSkills(c.Context(), userID)

	return c.SendStatus(fiber.StatusNoContent)
}
