package service

import (
	"context"
	"testing"

	"skillswap/internal/models"
)

func TestRatingServiceScoreOutOfRange(t *testing.T) {
	svc := NewRatingService(noopRatingRepo(), noopSwapRepo())
	_, err := svc.RateSwap(context.Background(), 1, 5, 6, "")
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestRatingServiceNotParticipant(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(ctx context.Context, id uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: id, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted}, nil
	}

	svc := NewRatingService(noopRatingRepo(), swaps)
	_, err := svc.RateSwap(context.Background(), 3, 5, 4, "")
	assertAppErrCode(t, err, "FORBIDDEN")
}

func TestRatingServiceSwapNotCompleted(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(ctx context.Context, id uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: id, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusAccepted}, nil
	}

	svc := NewRatingService(noopRatingRepo(), swaps)
	_, err := svc.RateSwap(context.Background(), 1, 5, 4, "")
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestRatingServiceDuplicate(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(ctx context.Context, id uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: id, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted}, nil
	}
	ratings := noopRatingRepo()
	ratings.getBySwapAndRaterFn = func(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
		return &models.Rating{ID: 1, SwapRequestID: swapID, RaterID: raterID}, nil
	}

	svc := NewRatingService(ratings, swaps)
	_, err := svc.RateSwap(context.Background(), 1, 5, 4, "")
	assertAppErrCode(t, err, "CONFLICT")
}

func TestRatingServiceRatesOtherParticipant(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(ctx context.Context, id uint) (*models.SwapRequest, error) {
		return &models.SwapRequest{ID: id, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted}, nil
	}
	var saved *models.Rating
	ratings := noopRatingRepo()
	ratings.createAndRecomputeFn = func(ctx context.Context, rating *models.Rating) error {
		saved = rating
		return nil
	}

	svc := NewRatingService(ratings, swaps)
	rating, err := svc.RateSwap(context.Background(), 2, 5, 5, "  great partner  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected rating to be persisted")
	}
	if rating.RatedID != 1 {
		t.Fatalf("expected provider to rate requester, rated %d", rating.RatedID)
	}
	if rating.Feedback != "great partner" {
		t.Fatalf("expected trimmed feedback, got %q", rating.Feedback)
	}
}
