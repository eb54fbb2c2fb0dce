package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-api/internal/models"
)

// SubjectFilter describes the typed query options for listing subjects.
type SubjectFilter struct {
	Department models.Department
	Semester   models.Semester
	Page       int
	Limit      int
}

// SubjectRepository provides access to course records.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (models.Subject, error)
	GetBySubjectCode(ctx context.Context, subjectCode string) (models.Subject, error)
	List(ctx context.Context, filter SubjectFilter) ([]models.Subject, int64, error)
	ListByDepartmentAndSemester(ctx context.Context, department models.Department, semester models.Semester) ([]models.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository constructs a GORM-backed subject repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).Preload("AssignedTeacher").First(&subject, id).Error; err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) GetBySubjectCode(ctx context.Context, subjectCode string) (models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).Where("subject_code = ?", subjectCode).First(&subject).Error; err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) List(ctx context.Context, filter SubjectFilter) ([]models.Subject, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Subject{})

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

	var subjects []models.Subject
	err := paginate(query, filter.Page, filter.Limit).
		Preload("AssignedTeacher").
		Order("subject_code ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, 0, err
	}

	return subjects, total, nil
}

func (r *subjectRepository) ListByDepartmentAndSemester(ctx context.Context, department models.Department, semester models.Semester) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.WithContext(ctx).
		Where("department = ? AND semester = ? AND is_deprecated = ?", department, semester, false).
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}

	return subjects, nil
}
