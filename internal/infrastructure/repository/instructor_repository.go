package repository

import (
	"context"

	"robocamp/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstructorRepository implements catalog.InstructorRepository using GORM
type InstructorRepository struct {
	db *gorm.DB
}

// NewInstructorRepository creates a new GORM instructor repository
func NewInstructorRepository(db *gorm.DB) catalog.InstructorRepository {
	return &InstructorRepository{db: db}
}

// Create creates a new instructor
func (r *InstructorRepository) Create(ctx context.Context, instructor *catalog.Instructor) error {
	return r.db.WithContext(ctx).Create(instructor).Error
}

// GetByID retrieves an instructor by ID
func (r *InstructorRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Instructor, error) {
	var instructor catalog.Instructor
	err := r.db.WithContext(ctx).First(&instructor, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &instructor, nil
}

// List retrieves all instructors ordered by name
func (r *InstructorRepository) List(ctx context.Context) ([]*catalog.Instructor, error) {
	var instructors []*catalog.Instructor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&instructors).Error
	if err != nil {
		return nil, err
	}
	return instructors, nil
}

// Update updates an existing instructor
func (r *InstructorRepository) Update(ctx context.Context, instructor *catalog.Instructor) error {
	return r.db.WithContext(ctx).Save(instructor).Error
}

// Delete removes an instructor
func (r *InstructorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Instructor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
