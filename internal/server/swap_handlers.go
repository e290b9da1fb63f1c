package server

import (
	"context"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
// @Summary Propose a swap
// @Description Offer one of your skills in exchange for another user's skill
// @Tags swaps
// @Accept json
// @Produce json
// @Param request body object{offered_skill_id=int,wanted_skill_id=int,message=string} true "Swap proposal"
// @Success 201 {object} models.SwapRequest
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /swaps [post]
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		OfferedSkillID uint   `json:"offered_skill_id"`
		WantedSkillID  uint   `json:"wanted_skill_id"`
		Message        string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapSvc().CreateSwapRequest(c.Context(), userID,
		req.OfferedSkillID, req.WantedSkillID, req.Message)
	if err != nil {
		return mapServiceError(c, err)
	}

	s.publishUserEvent(swap.ProviderID, EventSwapRequestReceived, map[string]interface{}{
		"swap": swapSummary(swap),
	})
	s.publishUserEvent(swap.RequesterID, EventSwapRequestSent, map[string]interface{}{
		"swap": swapSummary(swap),
	})

	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetSwap handles GET /api/swaps/:id
// Visible to the two participants and to admins.
func (s *Server) GetSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	admin, err := s.isAdmin(c, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	swap, err := s.swapSvc().GetSwapRequest(c.Context(), userID, swapID, admin)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(swap)
}

// ListMySwaps handles GET /api/swaps
// Optional filters: status, role (requester|provider).
func (s *Server) ListMySwaps(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	status := models.SwapStatus(c.Query("status"))
	role := c.Query("role")

	swaps, total, err := s.swapSvc().ListForUser(c.Context(), userID, status, role, p.Page, p.PageSize)
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

// GetPendingSwaps handles GET /api/swaps/pending
// Lists pending requests where the caller is the provider (their inbox).
func (s *Server) GetPendingSwaps(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	swaps, err := s.swapSvc().GetPendingReceived(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps": swaps,
	})
}

// GetSentSwaps handles GET /api/swaps/sent
func (s *Server) GetSentSwaps(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	swaps, err := s.swapSvc().GetSent(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps": swaps,
	})
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapSvc().Accept, EventSwapAccepted)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapSvc().Reject, EventSwapRejected)
}

// CancelSwap handles POST /api/swaps/:id/cancel
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapSvc().Cancel, EventSwapCancelled)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapSvc().Complete, EventSwapCompleted)
}

// transitionSwap runs one guarded status transition and notifies the other
// participant on success.
func (s *Server) transitionSwap(
	c *fiber.Ctx,
	transition func(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error),
	eventType string,
) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := transition(c.Context(), userID, swapID)
	if err != nil {
		return mapServiceError(c, err)
	}

	s.publishUserEvent(swap.OtherParticipant(userID), eventType, map[string]interface{}{
		"swap":  swapSummary(swap),
		"actor": userID,
	})

	return c.JSON(swap)
}
