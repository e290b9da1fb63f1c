package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// AnnouncementRepository defines the interface for announcement data operations
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	ListActive(ctx context.Context) ([]models.Announcement, error)
	ListAll(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := readDB(r.db).WithContext(ctx).First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Announcement", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &announcement, nil
}

func (r *announcementRepository) ListActive(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := readDB(r.db).WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&announcements).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return announcements, nil
}

func (r *announcementRepository) ListAll(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error) {
	var total int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var announcements []models.Announcement
	if err := readDB(r.db).WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&announcements).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return announcements, total, nil
}

func (r *announcementRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Announcement", id)
	}
	return nil
}
