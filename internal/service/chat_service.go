package service

import (
	"context"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// ChatService provides per-swap conversation business logic. A thread
// opens when the swap is accepted and stays readable after completion.
type ChatService struct {
	messageRepo repository.MessageRepository
	swapRepo    repository.SwapRepository
}

// NewChatService returns a new ChatService.
func NewChatService(messageRepo repository.MessageRepository, swapRepo repository.SwapRepository) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		swapRepo:    swapRepo,
	}
}

// SendMessage appends a message to the swap's thread.
func (s *ChatService) SendMessage(ctx context.Context, senderID, swapID uint, content string) (*models.SwapMessage, error) {
	if err := validation.ValidateMessageContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(senderID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	switch swap.Status {
	case models.SwapStatusAccepted, models.SwapStatusCompleted:
		// chat is open
	default:
		return nil, models.NewValidationError("Chat opens once the swap is accepted")
	}

	message := &models.SwapMessage{
		SwapRequestID: swapID,
		SenderID:      senderID,
		Content:       strings.TrimSpace(content),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	message.Sender = nil
	return message, nil
}

// threadFirstPageSize matches the default page size clients fetch when
// opening a conversation; only that page is cached.
const threadFirstPageSize = 50

// threadPage is the cached shape of a conversation's first page.
type threadPage struct {
	Messages []models.SwapMessage `json:"messages"`
	Total    int64                `json:"total"`
}

// GetThread returns the swap's messages, oldest first. The first page is
// served through the cache; the participant check always runs first so a
// cached thread never leaks to outsiders.
func (s *ChatService) GetThread(ctx context.Context, userID, swapID uint, page, pageSize int) ([]models.SwapMessage, int64, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, 0, err
	}
	if !swap.IsParticipant(userID) {
		return nil, 0, models.NewForbiddenError("You are not part of this swap")
	}

	if page == 1 && pageSize == threadFirstPageSize {
		cached, err := cache.Aside(ctx, cache.SwapThreadKey(swapID), cache.SwapThreadTTL,
			func(ctx context.Context) (threadPage, error) {
				messages, total, err := s.messageRepo.ListBySwap(ctx, swapID, page, pageSize)
				if err != nil {
					return threadPage{}, err
				}
				return threadPage{Messages: messages, Total: total}, nil
			})
		if err != nil {
			return nil, 0, err
		}
		return cached.Messages, cached.Total, nil
	}

	return s.messageRepo.ListBySwap(ctx, swapID, page, pageSize)
}

// MarkRead marks the other participant's messages as read and returns the
// number affected.
func (s *ChatService) MarkRead(ctx context.Context, userID, swapID uint) (int64, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return 0, err
	}
	if !swap.IsParticipant(userID) {
		return 0, models.NewForbiddenError("You are not part of this swap")
	}
	return s.messageRepo.MarkRead(ctx, swapID, userID)
}

// CountUnread returns how many messages from the other side are unread.
func (s *ChatService) CountUnread(ctx context.Context, userID, swapID uint) (int64, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return 0, err
	}
	if !swap.IsParticipant(userID) {
		return 0, models.NewForbiddenError("You are not part of this swap")
	}
	return s.messageRepo.CountUnread(ctx, swapID, userID)
}
