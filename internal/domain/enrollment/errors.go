package enrollment

import "errors"

// Business-rule failures surfaced as 4xx responses. Handlers map these
// with errors.Is; everything else is treated as an infrastructure error.
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseFull           = errors.New("course is full")
	ErrAgeOutOfRange        = errors.New("child age is outside the course age range")
	ErrTermsNotAgreed       = errors.New("terms and conditions must be accepted")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyCancelled     = errors.New("registration has already been cancelled")

	ErrDiscountNotFound     = errors.New("discount code not found")
	ErrDiscountInactive     = errors.New("discount code is no longer active")
	ErrDiscountMaxUses      = errors.New("discount code has reached its usage limit")
	ErrDiscountNotYetActive = errors.New("discount code is not active yet")
	ErrDiscountExpired      = errors.New("discount code has expired")

	// ErrDuplicateConfirmation signals a confirmation-number collision on
	// insert; the caller regenerates and retries once.
	ErrDuplicateConfirmation = errors.New("confirmation number already exists")
)
