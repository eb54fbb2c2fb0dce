package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// NoticeFilter describes the typed query options for listing notices.
type NoticeFilter struct {
	Department models.Department
	Semester   models.Semester
	Page       int
	Limit      int
}

// NoticeRepository provides access to notice records.
type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	Update(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id uint) (models.Notice, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter NoticeFilter) ([]models.Notice, int64, error)
	ListByDepartment(ctx context.Context, department models.Department) ([]models.Notice, error)
}

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository constructs a GORM-backed notice repository.
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	return r.db.WithContext(ctx).Save(notice).Error
}

func (r *noticeRepository) GetByID(ctx context.Context, id uint) (models.Notice, error) {
	var notice models.Notice
	if err := r.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		return models.Notice{}, err
	}

	return notice, nil
}

func (r *noticeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Notice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *noticeRepository) List(ctx context.Context, filter NoticeFilter) ([]models.Notice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Notice{})

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Semester != 0 {
		query = query.Where("semester = ?", filter.Semester)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notices []models.Notice
	if err := paginate(query, filter.Page, filter.Limit).Order("date DESC").Find(&notices).Error; err != nil {
		return nil, 0, err
	}

	return notices, total, nil
}

func (r *noticeRepository) ListByDepartment(ctx context.Context, department models.Department) ([]models.Notice, error) {
	var notices []models.Notice
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("date DESC").
		Find(&notices).Error
	if err != nil {
		return nil, err
	}

	return notices, nil
}
