package repository

import (
	"context"
	"fmt"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/enrollment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCourseHasRegistrations is returned when deleting a course that still
// has non-refunded registrations referencing it.
var ErrCourseHasRegistrations = fmt.Errorf("course has active registrations")

// CourseRepository implements catalog.CourseRepository using GORM
type CourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new GORM course repository
func NewCourseRepository(db *gorm.DB) catalog.CourseRepository {
	return &CourseRepository{db: db}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *catalog.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// GetByID retrieves a course by ID with its instructor
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	var course catalog.Course
	err := r.db.WithContext(ctx).Preload("Instructor").First(&course, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// ListActive retrieves all active courses ordered by start date
func (r *CourseRepository) ListActive(ctx context.Context) ([]*catalog.Course, error) {
	var courses []*catalog.Course
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("is_active = ?", true).
		Order("start_date ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// ListAll retrieves every course, active or not
func (r *CourseRepository) ListAll(ctx context.Context) ([]*catalog.Course, error) {
	var courses []*catalog.Course
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Order("start_date ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *catalog.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete removes a course. Deletion is blocked while any non-refunded
// registration references the course.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&enrollment.Registration{}).
			Where("course_id = ? AND payment_status IN ?", id, enrollment.ActiveStatuses).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrCourseHasRegistrations
		}

		result := tx.Delete(&catalog.Course{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
