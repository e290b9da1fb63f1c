package server

import (
	"encoding/json"
	"log"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// SendSwapMessage handles POST /api/swaps/:id/messages
// The service enforces that only the two swap participants may write, and
// only once the swap is accepted; the thread stays open after completion.
func (s *Server) SendSwapMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.chatSvc().SendMessage(c.Context(), userID, swapID, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}

	cache.InvalidateSwapThread(c.Context(), swapID)
	s.fanOutChatMessage(c, swapID, message)

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetSwapMessages handles GET /api/swaps/:id/messages
func (s *Server) GetSwapMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	messages, total, err := s.chatSvc().GetThread(c.Context(), userID, swapID, p.Page, p.PageSize)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages":  messages,
		"total":     total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

// MarkSwapMessagesRead handles POST /api/swaps/:id/messages/read
// Marks every message addressed to the caller in this thread as read.
func (s *Server) MarkSwapMessagesRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	updated, err := s.chatSvc().MarkRead(c.Context(), userID, swapID)
	if err != nil {
		return mapServiceError(c, err)
	}

	if updated > 0 {
		cache.InvalidateSwapThread(c.Context(), swapID)
		if s.notifier != nil {
			if perr := s.notifier.PublishReadReceipt(c.Context(), swapID, userID); perr != nil {
				log.Printf("failed to publish read receipt for swap %d: %v", swapID, perr)
			}
		}
	}

	return c.JSON(fiber.Map{
		"marked_read": updated,
	})
}

// fanOutChatMessage delivers a freshly stored message to live thread viewers
// (local hub plus Redis for other instances) and pushes a notification event
// to the recipient's personal stream.
func (s *Server) fanOutChatMessage(c *fiber.Ctx, swapID uint, message *models.SwapMessage) {
	payload := map[string]interface{}{
		"message": message,
	}

	if s.chatHub != nil {
		s.chatHub.BroadcastToThread(swapID, notifications.ChatMessage{
			Type:    "message",
			SwapID:  swapID,
			UserID:  message.SenderID,
			Payload: payload,
		})
	}

	if s.notifier != nil {
		frame := map[string]interface{}{
			"type":    "message",
			"swap_id": swapID,
			"user_id": message.SenderID,
			"payload": payload,
		}
		if frameJSON, err := json.Marshal(frame); err == nil {
			if perr := s.notifier.PublishChatMessage(c.Context(), swapID, string(frameJSON)); perr != nil {
				log.Printf("failed to publish chat message for swap %d: %v", swapID, perr)
			}
		}
	}

	// Notify the other participant on their general event stream too, so
	// unread badges update even when the chat view is closed.
	if swap, err := s.swapRepo.GetByID(c.Context(), swapID); err == nil {
		recipient := swap.OtherParticipant(message.SenderID)
		s.publishUserEvent(recipient, EventMessageReceived, map[string]interface{}{
			"swap_id": swapID,
			"message": message,
		})
	}
}
