package server

import (
	"skillswap/internal/cache"
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RateSwap handles POST /api/swaps/:id/ratings
// Each participant may rate a completed swap exactly once; the duplicate
// guard and the rated user's aggregate recompute both run inside the
// service's transaction.
func (s *Server) RateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.ratingSvc().RateSwap(c.Context(), userID, swapID, req.Score, req.Feedback)
	if err != nil {
		return mapServiceError(c, err)
	}

	// The rated user's cached profile carries a stale average now
	cache.InvalidateUser(c.Context(), rating.RatedID)

	s.publishUserEvent(rating.RatedID, EventRatingReceived, map[string]interface{}{
		"swap_id": swapID,
		"rating": map[string]interface{}{
			"id":    rating.ID,
			"score": rating.Score,
		},
	})

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetSwapRatings handles GET /api/swaps/:id/ratings
// Visible to the two participants and to admins.
func (s *Server) GetSwapRatings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, err := s.isAdmin(c, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	ratings, err := s.ratingSvc().GetSwapRatings(c.Context(), userID, swapID, admin)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"ratings": ratings,
	})
}
