// Package service contains the business logic of the skill exchange.
package service

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// SwapService provides swap request lifecycle business logic.
type SwapService struct {
	swapRepo  repository.SwapRepository
	skillRepo repository.SkillRepository
	userRepo  repository.UserRepository
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, skillRepo repository.SkillRepository, userRepo repository.UserRepository) *SwapService {
	return &SwapService{
		swapRepo:  swapRepo,
		skillRepo: skillRepo,
		userRepo:  userRepo,
	}
}

// CreateSwapRequest proposes an exchange: the requester offers one of their
// own approved skills in return for one of the provider's.
func (s *SwapService) CreateSwapRequest(ctx context.Context, requesterID, offeredSkillID, wantedSkillID uint, message string) (*models.SwapRequest, error) {
	offered, err := s.skillRepo.GetByID(ctx, offeredSkillID)
	if err != nil {
		return nil, err
	}
	if offered.UserID != requesterID {
		return nil, models.NewForbiddenError("You can only offer your own skills")
	}
	if offered.Type != models.SkillTypeOffered {
		return nil, models.NewValidationError("Only an offered-type skill can be traded")
	}
	if !offered.Approved {
		return nil, models.NewValidationError("Offered skill is awaiting approval")
	}

	wanted, err := s.skillRepo.GetByID(ctx, wantedSkillID)
	if err != nil {
		return nil, err
	}
	if wanted.UserID == requesterID {
		return nil, models.NewValidationError("Cannot request a swap with yourself")
	}
	if wanted.Type != models.SkillTypeOffered {
		return nil, models.NewValidationError("Swaps trade the other member's offered skills")
	}
	if !wanted.Approved {
		return nil, models.NewValidationError("Requested skill is awaiting approval")
	}

	provider, err := s.userRepo.GetByID(ctx, wanted.UserID)
	if err != nil {
		return nil, err
	}
	if provider.IsBanned {
		return nil, models.NewNotFoundError("User", provider.ID)
	}
	if !provider.IsPublic {
		return nil, models.NewForbiddenError("This profile does not accept swap requests")
	}

	// Pre-check for a friendlier error; the partial unique index remains
	// the authoritative guard under concurrency.
	dup, err := s.swapRepo.HasPendingDuplicate(ctx, requesterID, provider.ID, offeredSkillID, wantedSkillID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, models.NewConflictError("an identical swap request is already pending")
	}

	swap := &models.SwapRequest{
		RequesterID:    requesterID,
		ProviderID:     provider.ID,
		OfferedSkillID: offeredSkillID,
		WantedSkillID:  wantedSkillID,
		Message:        message,
		Status:         models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	observability.RecordSwapTransition(string(models.SwapStatusPending))
	return s.swapRepo.GetByID(ctx, swap.ID)
}

// GetSwapRequest returns the swap if the caller participates in it.
// Admins may read any swap.
func (s *SwapService) GetSwapRequest(ctx context.Context, userID, swapID uint, viewerIsAdmin bool) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !viewerIsAdmin && !swap.IsParticipant(userID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	return swap, nil
}

// Accept moves a pending request to accepted. Only the provider may accept.
func (s *SwapService) Accept(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.ProviderID != userID {
		return nil, models.NewForbiddenError("Only the recipient can accept a swap request")
	}

	now := time.Now()
	if err := s.transition(ctx, swapID, models.SwapStatusPending, models.SwapStatusAccepted, map[string]interface{}{
		"accepted_at": now,
	}); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, swapID)
}

// Reject moves a pending request to rejected. Only the provider may reject.
func (s *SwapService) Reject(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.ProviderID != userID {
		return nil, models.NewForbiddenError("Only the recipient can reject a swap request")
	}

	if err := s.transition(ctx, swapID, models.SwapStatusPending, models.SwapStatusRejected, nil); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, swapID)
}

// Cancel withdraws a pending request. Only the requester may cancel.
func (s *SwapService) Cancel(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != userID {
		return nil, models.NewForbiddenError("Only the sender can cancel a swap request")
	}

	if err := s.transition(ctx, swapID, models.SwapStatusPending, models.SwapStatusCancelled, nil); err != nil {
		return nil, err
	}
	return s.swapRepo.GetByID(ctx, swapID)
}

// Complete marks an accepted exchange as done. Either participant may
// complete; the optimistic model trusts one side's word. Completed-swap
// counters reflect rated swaps and move when ratings land, not here.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}

	span, ctx := observability.NewSpan(ctx, "swap.complete")
	defer span.End()
	span.AddAttributes(attribute.Int("swap.id", int(swapID)))

	if err := s.swapRepo.Complete(ctx, swapID); err != nil {
		span.SetError(err)
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			observability.RecordSwapConflict(string(models.SwapStatusCompleted))
		}
		return nil, err
	}

	observability.RecordSwapTransition(string(models.SwapStatusCompleted))
	return s.swapRepo.GetByID(ctx, swapID)
}

// GetPendingReceived returns pending requests addressed to the user.
func (s *SwapService) GetPendingReceived(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.GetPendingReceived(ctx, userID)
}

// GetSent returns pending requests the user has sent.
func (s *SwapService) GetSent(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.GetSent(ctx, userID)
}

// ListForUser returns all swaps the user participates in, optionally
// filtered by status and by the user's role on the swap.
func (s *SwapService) ListForUser(ctx context.Context, userID uint, status models.SwapStatus, role string, page, pageSize int) ([]models.SwapRequest, int64, error) {
	if status != "" && !validSwapStatus(status) {
		return nil, 0, models.NewValidationError("unknown swap status filter")
	}
	if role != "" && role != "requester" && role != "provider" {
		return nil, 0, models.NewValidationError("role must be requester or provider")
	}
	return s.swapRepo.ListForUser(ctx, userID, status, role, page, pageSize)
}

func (s *SwapService) transition(ctx context.Context, swapID uint, from, to models.SwapStatus, extra map[string]interface{}) error {
	span, ctx := observability.NewSpan(ctx, "swap.transition")
	defer span.End()
	span.AddAttributes(
		attribute.Int("swap.id", int(swapID)),
		attribute.String("swap.from", string(from)),
		attribute.String("swap.to", string(to)),
	)

	err := s.swapRepo.TransitionStatus(ctx, swapID, from, to, extra)
	if err != nil {
		span.SetError(err)
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			observability.RecordSwapConflict(string(to))
		}
		return err
	}
	observability.RecordSwapTransition(string(to))
	return nil
}

func validSwapStatus(status models.SwapStatus) bool {
	switch status {
	case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusCompleted,
		models.SwapStatusCancelled, models.SwapStatusRejected:
		return true
	}
	return false
}
