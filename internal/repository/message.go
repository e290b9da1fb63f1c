package repository

import (
	"context"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for swap chat message operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.SwapMessage) error
	ListBySwap(ctx context.Context, swapID uint, page, pageSize int) ([]models.SwapMessage, int64, error)
	MarkRead(ctx context.Context, swapID, readerID uint) (int64, error)
	CountUnread(ctx context.Context, swapID, readerID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new swap message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.SwapMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListBySwap returns the thread oldest first so clients can append.
func (r *messageRepository) ListBySwap(ctx context.Context, swapID uint, page, pageSize int) ([]models.SwapMessage, int64, error) {
	base := readDB(r.db).WithContext(ctx).
		Model(&models.SwapMessage{}).
		Where("swap_request_id = ?", swapID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var messages []models.SwapMessage
	if err := base.
		Preload("Sender").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return messages, total, nil
}

// MarkRead marks every unread message in the thread that was sent by the
// other participant and returns how many were affected.
func (r *messageRepository) MarkRead(ctx context.Context, swapID, readerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SwapMessage{}).
		Where("swap_request_id = ? AND sender_id != ? AND is_read = ?", swapID, readerID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, swapID, readerID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.SwapMessage{}).
		Where("swap_request_id = ? AND sender_id != ? AND is_read = ?", swapID, readerID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
