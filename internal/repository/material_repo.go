package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// MaterialFilter describes the typed query options for listing materials.
type MaterialFilter struct {
	BatchID   uint
	SubjectID uint
	Page      int
	Limit     int
}

// MaterialRepository provides access to study material records.
type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id uint) (models.Material, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter MaterialFilter) ([]models.Material, int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository constructs a GORM-backed material repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Update(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (models.Material, error) {
	var material models.Material
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return models.Material{}, err
	}

	return material, nil
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *materialRepository) List(ctx context.Context, filter MaterialFilter) ([]models.Material, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Material{})

	if filter.BatchID != 0 {
		query = query.Where("batch_id = ?", filter.BatchID)
	}
	if filter.SubjectID != 0 {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []models.Material
	if err := paginate(query, filter.Page, filter.Limit).Order("created_at DESC").Find(&materials).Error; err != nil {
		return nil, 0, err
	}

	return materials, total, nil
}
