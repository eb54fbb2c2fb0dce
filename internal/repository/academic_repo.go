package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// StudentFilter narrows student listings to a department and batch.
type StudentFilter struct {
	Department models.Department
	BatchID    uint
	Page       int
	Limit      int
}

// AcademicDetailRepository provides access to student enrolment records.
type AcademicDetailRepository interface {
	Create(ctx context.Context, detail *models.AcademicDetail) error
	Update(ctx context.Context, detail *models.AcademicDetail) error
	GetByStudentID(ctx context.Context, studentID uint) (models.AcademicDetail, error)
	List(ctx context.Context, filter StudentFilter) ([]models.AcademicDetail, int64, error)
}

type academicDetailRepository struct {
	db *gorm.DB
}

// NewAcademicDetailRepository constructs a GORM-backed enrolment repository.
func NewAcademicDetailRepository(db *gorm.DB) AcademicDetailRepository {
	return &academicDetailRepository{db: db}
}

func (r *academicDetailRepository) Create(ctx context.Context, detail *models.AcademicDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *academicDetailRepository) Update(ctx context.Context, detail *models.AcademicDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

func (r *academicDetailRepository) GetByStudentID(ctx context.Context, studentID uint) (models.AcademicDetail, error) {
	var detail models.AcademicDetail
	err := r.db.WithContext(ctx).
		Preload("Batch").
		Where("student_id = ?", studentID).
		First(&detail).Error
	if err != nil {
		return models.AcademicDetail{}, err
	}

	return detail, nil
}

func (r *academicDetailRepository) List(ctx context.Context, filter StudentFilter) ([]models.AcademicDetail, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AcademicDetail{})

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.BatchID != 0 {
		query = query.Where("batch_id = ?", filter.BatchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var details []models.AcademicDetail
	err := paginate(query, filter.Page, filter.Limit).
		Preload("Student").
		Find(&details).Error
	if err != nil {
		return nil, 0, err
	}

	return details, total, nil
}
