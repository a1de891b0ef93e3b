package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/infrastructure/cache"
	"robocamp/internal/infrastructure/repository"
	"robocamp/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogCache is the read-side cache the catalog service publishes the
// public course list through.
type CatalogCache interface {
	GetCourseList(ctx context.Context, dest interface{}) error
	SetCourseList(ctx context.Context, courses interface{}) error
	GetCourseDetail(ctx context.Context, courseID uuid.UUID, dest interface{}) error
	SetCourseDetail(ctx context.Context, courseID uuid.UUID, course interface{}) error
	InvalidateCourse(ctx context.Context, courseID uuid.UUID) error
}

// CatalogService serves the public course catalog and the admin CRUD for
// courses and instructors. Public reads go through Redis; admin writes
// invalidate eagerly.
type CatalogService struct {
	courses     catalog.CourseRepository
	instructors catalog.InstructorRepository
	cache       CatalogCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(courses catalog.CourseRepository, instructors catalog.InstructorRepository, cache CatalogCache) *CatalogService {
	return &CatalogService{
		courses:     courses,
		instructors: instructors,
		cache:       cache,
	}
}

// ListActiveCourses returns the public catalog, cache first.
func (s *CatalogService) ListActiveCourses(ctx context.Context) ([]*catalog.Course, error) {
	var cached []*catalog.Course
	if err := s.cache.GetCourseList(ctx, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Course list cache read failed: %v", err)
	}

	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if err := s.cache.SetCourseList(ctx, courses); err != nil {
		logger.Warn("Failed to cache course list: %v", err)
	}

	return courses, nil
}

// GetCourse returns a single course, cache first.
func (s *CatalogService) GetCourse(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	var cached catalog.Course
	if err := s.cache.GetCourseDetail(ctx, id, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("Course detail cache read failed: %v", err)
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, catalog.ErrCourseNotFound
	}

	if err := s.cache.SetCourseDetail(ctx, id, course); err != nil {
		logger.Warn("Failed to cache course %s: %v", id, err)
	}

	return course, nil
}

// ListAllCourses returns every course including inactive ones (admin).
func (s *CatalogService) ListAllCourses(ctx context.Context) ([]*catalog.Course, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// CreateCourse creates a new course (admin).
func (s *CatalogService) CreateCourse(ctx context.Context, req *catalog.CreateCourseRequest) (*catalog.Course, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}

	course := &catalog.Course{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		MinAge:      req.MinAge,
		MaxAge:      req.MaxAge,
		Capacity:    req.Capacity,
		Price:       price,
		Schedule:    req.Schedule,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if req.MaxAge < req.MinAge {
		return nil, fmt.Errorf("max_age must not be below min_age")
	}

	if req.DiscountedPrice != nil && *req.DiscountedPrice != "" {
		dp, err := decimal.NewFromString(*req.DiscountedPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid discounted_price: %w", err)
		}
		if dp.GreaterThan(price) {
			return nil, fmt.Errorf("discounted_price must not exceed price")
		}
		course.DiscountedPrice = decimal.NewNullDecimal(dp)
	}

	if course.StartDate, err = time.Parse("2006-01-02", req.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	if course.EndDate, err = time.Parse("2006-01-02", req.EndDate); err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	if req.InstructorID != nil {
		instructorID, err := uuid.Parse(*req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("invalid instructor_id: %w", err)
		}
		instructor, err := s.instructors.GetByID(ctx, instructorID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up instructor: %w", err)
		}
		if instructor == nil {
			return nil, catalog.ErrInstructorNotFound
		}
		course.InstructorID = &instructorID
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.invalidate(ctx, course.ID)
	logger.Info("Course %s created: %s", course.ID, course.Title)
	return course, nil
}

// UpdateCourse applies a partial update to a course (admin).
func (s *CatalogService) UpdateCourse(ctx context.Context, id uuid.UUID, req *catalog.UpdateCourseRequest) (*catalog.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, catalog.ErrCourseNotFound
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.MinAge != nil {
		course.MinAge = *req.MinAge
	}
	if req.MaxAge != nil {
		course.MaxAge = *req.MaxAge
	}
	if course.MaxAge < course.MinAge {
		return nil, fmt.Errorf("max_age must not be below min_age")
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		course.Price = price
	}
	if req.DiscountedPrice != nil {
		if *req.DiscountedPrice == "" {
			course.DiscountedPrice = decimal.NullDecimal{}
		} else {
			dp, err := decimal.NewFromString(*req.DiscountedPrice)
			if err != nil {
				return nil, fmt.Errorf("invalid discounted_price: %w", err)
			}
			if dp.GreaterThan(course.Price) {
				return nil, fmt.Errorf("discounted_price must not exceed price")
			}
			course.DiscountedPrice = decimal.NewNullDecimal(dp)
		}
	}
	if req.StartDate != nil {
		if course.StartDate, err = time.Parse("2006-01-02", *req.StartDate); err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
	}
	if req.EndDate != nil {
		if course.EndDate, err = time.Parse("2006-01-02", *req.EndDate); err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
	}
	if req.Schedule != nil {
		course.Schedule = *req.Schedule
	}
	if req.Location != nil {
		course.Location = *req.Location
	}
	if req.InstructorID != nil {
		instructorID, err := uuid.Parse(*req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("invalid instructor_id: %w", err)
		}
		course.InstructorID = &instructorID
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.invalidate(ctx, course.ID)
	return course, nil
}

// DeleteCourse removes a course unless active registrations reference it (admin).
func (s *CatalogService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	err := s.courses.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseHasRegistrations) {
			return catalog.ErrCourseInUse
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.invalidate(ctx, id)
	logger.Info("Course %s deleted", id)
	return nil
}

// ListInstructors returns all instructors.
func (s *CatalogService) ListInstructors(ctx context.Context) ([]*catalog.Instructor, error) {
	instructors, err := s.instructors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	return instructors, nil
}

// CreateInstructor creates a new instructor (admin).
func (s *CatalogService) CreateInstructor(ctx context.Context, req *catalog.CreateInstructorRequest) (*catalog.Instructor, error) {
	instructor := &catalog.Instructor{
		ID:       uuid.New(),
		Name:     req.Name,
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
	}
	if err := s.instructors.Create(ctx, instructor); err != nil {
		return nil, fmt.Errorf("failed to create instructor: %w", err)
	}
	return instructor, nil
}

// DeleteInstructor removes an instructor (admin).
func (s *CatalogService) DeleteInstructor(ctx context.Context, id uuid.UUID) error {
	err := s.instructors.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrInstructorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, courseID uuid.UUID) {
	if err := s.cache.InvalidateCourse(ctx, courseID); err != nil {
		logger.Warn("Failed to invalidate catalog cache for course %s: %v", courseID, err)
	}
}
