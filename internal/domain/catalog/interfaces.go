package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CourseRepository defines the interface for course data access
type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*Course, error)
	ListActive(ctx context.Context) ([]*Course, error)
	ListAll(ctx context.Context) ([]*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InstructorRepository defines the interface for instructor data access
type InstructorRepository interface {
	Create(ctx context.Context, instructor *Instructor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Instructor, error)
	List(ctx context.Context) ([]*Instructor, error)
	Update(ctx context.Context, instructor *Instructor) error
	Delete(ctx context.Context, id uuid.UUID) error
}
