// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserBrowseFilter narrows the public user directory.
type UserBrowseFilter struct {
	Query        string // matches username, display name or skill title
	Category     string
	Availability string
	Page         int
	PageSize     int
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error
	Browse(ctx context.Context, filter UserBrowseFilter) ([]models.User, int64, error)
	ListAll(ctx context.Context, query string, page, pageSize int) ([]models.User, int64, error)
	SetBanned(ctx context.Context, userID uint, banned bool) error
	SetAdmin(ctx context.Context, userID uint, admin bool) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return models.NewConflictError("username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := readDB(r.db).WithContext(ctx).Preload("Skills").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := readDB(r.db).WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := readDB(r.db).WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Browse returns public, non-banned users with approved skills matching
// the filter, newest first.
func (r *userRepository) Browse(ctx context.Context, filter UserBrowseFilter) ([]models.User, int64, error) {
	q := readDB(r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("users.is_public = ? AND users.is_banned = ?", true, false)

	if filter.Availability != "" {
		q = q.Where("users.availability LIKE ?", "%"+filter.Availability+"%")
	}

	needsSkillJoin := filter.Query != "" || filter.Category != ""
	if needsSkillJoin {
		q = q.Joins("LEFT JOIN skills ON skills.user_id = users.id AND skills.approved = ? AND skills.deleted_at IS NULL", true)
		if filter.Category != "" {
			q = q.Where("skills.category = ?", filter.Category)
		}
		if filter.Query != "" {
			like := "%" + strings.ToLower(filter.Query) + "%"
			q = q.Where("LOWER(users.username) LIKE ? OR LOWER(users.display_name) LIKE ? OR LOWER(skills.title) LIKE ?", like, like, like)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Distinct("users.id").Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	find := q.Session(&gorm.Session{})
	if needsSkillJoin {
		find = find.Group("users.id")
	}
	if err := find.
		Preload("Skills", "approved = ?", true).
		Order("users.created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return users, total, nil
}

func (r *userRepository) ListAll(ctx context.Context, query string, page, pageSize int) ([]models.User, int64, error) {
	base := readDB(r.db).WithContext(ctx).Model(&models.User{})
	if query != "" {
		like := "%" + query + "%"
		base = base.Where("username LIKE ? OR email LIKE ? OR display_name LIKE ?", like, like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *userRepository) SetBanned(ctx context.Context, userID uint, banned bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_banned", banned)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

func (r *userRepository) SetAdmin(ctx context.Context, userID uint, admin bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_admin", admin)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}
