package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data operations
type RatingRepository interface {
	// CreateAndRecompute inserts the rating and refreshes the rated
	// user's aggregates inside the same transaction.
	CreateAndRecompute(ctx context.Context, rating *models.Rating) error
	GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error)
	ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error)
	ListForUser(ctx context.Context, ratedID uint, page, pageSize int) ([]models.Rating, int64, error)
	Count(ctx context.Context) (int64, error)
	GlobalAverage(ctx context.Context) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) CreateAndRecompute(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}

		// Both aggregates are recomputed from the source of truth in a
		// single UPDATE with subqueries. The database evaluates the
		// subqueries at write time, so two concurrent raters cannot each
		// read a pre-insert average and commit a stale value over the
		// other's. CompletedSwaps counts distinct rated swaps.
		return tx.Model(&models.User{}).
			Where("id = ?", rating.RatedID).
			Updates(map[string]interface{}{
				"average_rating": gorm.Expr(
					"(SELECT COALESCE(AVG(score), 0) FROM ratings WHERE rated_id = ?)", rating.RatedID),
				"completed_swaps": gorm.Expr(
					"(SELECT COUNT(DISTINCT swap_request_id) FROM ratings WHERE rated_id = ?)", rating.RatedID),
			}).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return models.NewConflictError("this swap has already been rated")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := readDB(r.db).WithContext(ctx).
		Where("swap_request_id = ? AND rater_id = ?", swapID, raterID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListBySwap(ctx context.Context, swapID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := readDB(r.db).WithContext(ctx).
		Preload("Rater").
		Where("swap_request_id = ?", swapID).
		Order("created_at ASC").
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListForUser(ctx context.Context, ratedID uint, page, pageSize int) ([]models.Rating, int64, error) {
	base := readDB(r.db).WithContext(ctx).
		Model(&models.Rating{}).
		Where("rated_id = ?", ratedID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var ratings []models.Rating
	if err := base.
		Preload("Rater").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ratings).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return ratings, total, nil
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Rating{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *ratingRepository) GlobalAverage(ctx context.Context) (float64, error) {
	var avg float64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return avg, nil
}
