package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// RatingService provides post-swap feedback business logic.
type RatingService struct {
	ratingRepo repository.RatingRepository
	swapRepo   repository.SwapRepository
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, swapRepo repository.SwapRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		swapRepo:   swapRepo,
	}
}

// RateSwap records the caller's one-time rating of their partner on a
// completed swap. The partner's average is refreshed in the same
// transaction as the insert.
func (s *RatingService) RateSwap(ctx context.Context, raterID, swapID uint, score int, feedback string) (*models.Rating, error) {
	if err := validation.ValidateRatingScore(score); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(feedback) > validation.MaxFeedbackLength {
		return nil, models.NewValidationError("feedback is too long")
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(raterID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Only completed swaps can be rated")
	}

	existing, err := s.ratingRepo.GetBySwapAndRater(ctx, swapID, raterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("this swap has already been rated")
	}

	rating := &models.Rating{
		SwapRequestID: swapID,
		RaterID:       raterID,
		RatedID:       swap.OtherParticipant(raterID),
		Score:         score,
		Feedback:      strings.TrimSpace(feedback),
	}
	span, ctx := observability.NewSpan(ctx, "rating.create")
	defer span.End()
	span.AddAttributes(
		attribute.Int("swap.id", int(swapID)),
		attribute.Int("rating.rated_id", int(rating.RatedID)),
	)
	if err := s.ratingRepo.CreateAndRecompute(ctx, rating); err != nil {
		span.SetError(err)
		return nil, err
	}
	return rating, nil
}

// GetSwapRatings lists the ratings attached to one swap. Only participants
// may read them unless the viewer is an admin.
func (s *RatingService) GetSwapRatings(ctx context.Context, viewerID, swapID uint, viewerIsAdmin bool) ([]models.Rating, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !viewerIsAdmin && !swap.IsParticipant(viewerID) {
		return nil, models.NewForbiddenError("You are not part of this swap")
	}
	return s.ratingRepo.ListBySwap(ctx, swapID)
}

// GetUserRatings lists ratings a user has received.
func (s *RatingService) GetUserRatings(ctx context.Context, ratedID uint, page, pageSize int) ([]models.Rating, int64, error) {
	return s.ratingRepo.ListForUser(ctx, ratedID, page, pageSize)
}
