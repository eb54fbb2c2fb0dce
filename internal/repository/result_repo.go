package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// ResultFilter describes the typed query options for listing results.
type ResultFilter struct {
	SubjectID uint
	StudentID uint
	Page      int
	Limit     int
}

// ResultRepository provides access to grade records.
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	Update(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id uint) (models.Result, error)
	GetByStudentAndSubject(ctx context.Context, studentID, subjectID uint) (models.Result, error)
	List(ctx context.Context, filter ResultFilter) ([]models.Result, int64, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository constructs a GORM-backed result repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) Update(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

func (r *resultRepository) GetByID(ctx context.Context, id uint) (models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).First(&result, id).Error; err != nil {
		return models.Result{}, err
	}

	return result, nil
}

func (r *resultRepository) GetByStudentAndSubject(ctx context.Context, studentID, subjectID uint) (models.Result, error) {
	var result models.Result
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		First(&result).Error
	if err != nil {
		return models.Result{}, err
	}

	return result, nil
}

func (r *resultRepository) List(ctx context.Context, filter ResultFilter) ([]models.Result, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Result{})

	if filter.SubjectID != 0 {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []models.Result
	if err := paginate(query, filter.Page, filter.Limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *resultRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Result, error) {
	var results []models.Result
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
