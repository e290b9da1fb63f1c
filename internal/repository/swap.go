package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines the interface for swap request data operations
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	HasPendingDuplicate(ctx context.Context, requesterID, providerID, offeredSkillID, wantedSkillID uint) (bool, error)
	GetPendingReceived(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	GetSent(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	ListForUser(ctx context.Context, userID uint, status models.SwapStatus, role string, page, pageSize int) ([]models.SwapRequest, int64, error)
	TransitionStatus(ctx context.Context, swapID uint, from, to models.SwapStatus, extra map[string]interface{}) error
	Complete(ctx context.Context, swapID uint) error
	ListAll(ctx context.Context, status models.SwapStatus, page, pageSize int) ([]models.SwapRequest, int64, error)
	CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository creates a new swap request repository
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func swapPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkill").
		Preload("WantedSkill")
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		// The partial unique index rejects a second pending request for
		// the same tuple.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return models.NewConflictError("an identical swap request is already pending")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := swapPreloads(readDB(r.db).WithContext(ctx)).First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) HasPendingDuplicate(ctx context.Context, requesterID, providerID, offeredSkillID, wantedSkillID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("requester_id = ? AND provider_id = ? AND offered_skill_id = ? AND wanted_skill_id = ? AND status = ?",
			requesterID, providerID, offeredSkillID, wantedSkillID, models.SwapStatusPending).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *swapRepository) GetPendingReceived(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := swapPreloads(readDB(r.db).WithContext(ctx)).
		Where("provider_id = ? AND status = ?", userID, models.SwapStatusPending).
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) GetSent(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := swapPreloads(readDB(r.db).WithContext(ctx)).
		Where("requester_id = ? AND status = ?", userID, models.SwapStatusPending).
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListForUser(ctx context.Context, userID uint, status models.SwapStatus, role string, page, pageSize int) ([]models.SwapRequest, int64, error) {
	base := readDB(r.db).WithContext(ctx).Model(&models.SwapRequest{})
	switch role {
	case "requester":
		base = base.Where("requester_id = ?", userID)
	case "provider":
		base = base.Where("provider_id = ?", userID)
	default:
		base = base.Where("requester_id = ? OR provider_id = ?", userID, userID)
	}
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.SwapRequest
	if err := swapPreloads(base).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return swaps, total, nil
}

// TransitionStatus moves a swap from one status to another with a guarded
// update. A zero rows-affected result means a concurrent writer got there
// first and the caller receives a conflict.
func (r *swapRepository) TransitionStatus(ctx context.Context, swapID uint, from, to models.SwapStatus, extra map[string]interface{}) error {
	fields := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		fields[k] = v
	}

	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", swapID, from).
		Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		var current models.SwapRequest
		if err := r.db.WithContext(ctx).First(&current, swapID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Swap request", swapID)
			}
			return models.NewInternalError(err)
		}
		return models.NewConflictError("swap request is no longer " + string(from))
	}
	return nil
}

// Complete flips an accepted swap to completed with a guarded update.
// The participants' completed-swap counters are not touched here; they
// count distinct rated swaps and are refreshed by the rating insert.
func (r *swapRepository) Complete(ctx context.Context, swapID uint) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", swapID, models.SwapStatusAccepted).
		Updates(map[string]interface{}{
			"status":       models.SwapStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("swap request is no longer accepted")
	}
	return nil
}

func (r *swapRepository) ListAll(ctx context.Context, status models.SwapStatus, page, pageSize int) ([]models.SwapRequest, int64, error) {
	base := readDB(r.db).WithContext(ctx).Model(&models.SwapRequest{})
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.SwapRequest
	if err := swapPreloads(base).
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return swaps, total, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error) {
	type row struct {
		Status models.SwapStatus
		Total  int64
	}
	var rows []row
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SwapRequest{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.SwapStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
