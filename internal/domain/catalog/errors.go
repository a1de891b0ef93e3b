package catalog

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	// ErrCourseInUse blocks deleting a course that still has non-refunded
	// registrations referencing it.
	ErrCourseInUse = errors.New("course has active registrations and cannot be deleted")
)
