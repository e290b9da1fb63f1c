package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines the interface for skill data operations
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	GetByUser(ctx context.Context, userID uint, approvedOnly bool) ([]models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, skillID uint) error
	HardDelete(ctx context.Context, skillID uint) error
	Browse(ctx context.Context, filter SkillBrowseFilter) ([]models.Skill, int64, error)
	ListAll(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error)
	ListPendingApproval(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error)
	SetApproved(ctx context.Context, skillID uint, approved bool) error
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

// SkillBrowseFilter narrows the public approved-skill listing.
type SkillBrowseFilter struct {
	Category string
	Type     models.SkillType
	Query    string
	Page     int
	PageSize int
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) GetByUser(ctx context.Context, userID uint, approvedOnly bool) ([]models.Skill, error) {
	q := readDB(r.db).WithContext(ctx).Where("user_id = ?", userID)
	if approvedOnly {
		q = q.Where("approved = ?", true)
	}

	var skills []models.Skill
	if err := q.Order("created_at DESC").Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) Update(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Delete(ctx context.Context, skillID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Skill{}, skillID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// HardDelete removes the row entirely, bypassing the soft-delete flag.
// Used for moderation rejects, which are irreversible.
func (r *skillRepository) HardDelete(ctx context.Context, skillID uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&models.Skill{}, skillID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Browse(ctx context.Context, filter SkillBrowseFilter) ([]models.Skill, int64, error) {
	q := readDB(r.db).WithContext(ctx).
		Model(&models.Skill{}).
		Joins("JOIN users ON users.id = skills.user_id").
		Where("skills.approved = ?", true).
		Where("users.is_public = ? AND users.is_banned = ?", true, false)

	if filter.Category != "" {
		q = q.Where("skills.category = ?", filter.Category)
	}
	if filter.Type != "" {
		q = q.Where("skills.type = ?", filter.Type)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("skills.title LIKE ? OR skills.description LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var skills []models.Skill
	if err := q.Session(&gorm.Session{}).
		Preload("User").
		Order("skills.created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) ListAll(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error) {
	base := readDB(r.db).WithContext(ctx).Model(&models.Skill{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var skills []models.Skill
	if err := base.
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) ListPendingApproval(ctx context.Context, page, pageSize int) ([]models.Skill, int64, error) {
	base := readDB(r.db).WithContext(ctx).Model(&models.Skill{}).Where("approved = ?", false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var skills []models.Skill
	if err := base.
		Preload("User").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) SetApproved(ctx context.Context, skillID uint, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id = ?", skillID).
		Update("approved", approved)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", skillID)
	}
	return nil
}

func (r *skillRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Skill{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *skillRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Total    int64
	}
	var rows []row
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Skill{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}
