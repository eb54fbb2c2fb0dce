package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// BatchFilter describes the typed query options for listing batches.
type BatchFilter struct {
	Department       models.Department
	IncludeCompleted bool
	Page             int
	Limit            int
}

// BatchRepository provides access to cohort records.
type BatchRepository interface {
	Create(ctx context.Context, batch *models.Batch) error
	Update(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id uint) (models.Batch, error)
	GetByIDWithSubjects(ctx context.Context, id uint) (models.Batch, error)
	List(ctx context.Context, filter BatchFilter) ([]models.Batch, int64, error)
	AppendSubjects(ctx context.Context, batch *models.Batch, subjects []models.Subject) error
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository constructs a GORM-backed batch repository.
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepository) Update(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Omit("Subjects").Save(batch).Error
}

func (r *batchRepository) GetByID(ctx context.Context, id uint) (models.Batch, error) {
	var batch models.Batch
	if err := r.db.WithContext(ctx).First(&batch, id).Error; err != nil {
		return models.Batch{}, err
	}

	return batch, nil
}

func (r *batchRepository) GetByIDWithSubjects(ctx context.Context, id uint) (models.Batch, error) {
	var batch models.Batch
	if err := r.db.WithContext(ctx).Preload("Subjects").First(&batch, id).Error; err != nil {
		return models.Batch{}, err
	}

	return batch, nil
}

func (r *batchRepository) List(ctx context.Context, filter BatchFilter) ([]models.Batch, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Batch{})

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if !filter.IncludeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var batches []models.Batch
	if err := paginate(query, filter.Page, filter.Limit).Order("starting_year DESC").Find(&batches).Error; err != nil {
		return nil, 0, err
	}

	return batches, total, nil
}

func (r *batchRepository) AppendSubjects(ctx context.Context, batch *models.Batch, subjects []models.Subject) error {
	if len(subjects) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(batch).Association("Subjects").Append(subjects)
}
