package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// RoutineFilter describes the typed query options for listing routines.
type RoutineFilter struct {
	BatchID   uint
	SubjectID uint
	Day       models.Day
	Page      int
	Limit     int
}

// RoutineRepository provides access to class schedule records.
type RoutineRepository interface {
	Create(ctx context.Context, routine *models.Routine) error
	Update(ctx context.Context, routine *models.Routine) error
	GetByID(ctx context.Context, id uint) (models.Routine, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter RoutineFilter) ([]models.Routine, int64, error)
	ListByBatch(ctx context.Context, batchID uint) ([]models.Routine, error)
}

type routineRepository struct {
	db *gorm.DB
}

// NewRoutineRepository constructs a GORM-backed routine repository.
func NewRoutineRepository(db *gorm.DB) RoutineRepository {
	return &routineRepository{db: db}
}

func (r *routineRepository) Create(ctx context.Context, routine *models.Routine) error {
	return r.db.WithContext(ctx).Create(routine).Error
}

func (r *routineRepository) Update(ctx context.Context, routine *models.Routine) error {
	return r.db.WithContext(ctx).Save(routine).Error
}

func (r *routineRepository) GetByID(ctx context.Context, id uint) (models.Routine, error) {
	var routine models.Routine
	if err := r.db.WithContext(ctx).First(&routine, id).Error; err != nil {
		return models.Routine{}, err
	}

	return routine, nil
}

func (r *routineRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Routine{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *routineRepository) List(ctx context.Context, filter RoutineFilter) ([]models.Routine, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Routine{})

	if filter.BatchID != 0 {
		query = query.Where("batch_id = ?", filter.BatchID)
	}
	if filter.SubjectID != 0 {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.Day != "" {
		query = query.Where("day = ?", filter.Day)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var routines []models.Routine
	if err := paginate(query, filter.Page, filter.Limit).Find(&routines).Error; err != nil {
		return nil, 0, err
	}

	return routines, total, nil
}

func (r *routineRepository) ListByBatch(ctx context.Context, batchID uint) ([]models.Routine, error) {
	var routines []models.Routine
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("batch_id = ?", batchID).
		Find(&routines).Error
	if err != nil {
		return nil, err
	}

	return routines, nil
}
