package enrollment

import (
	"context"

	"robocamp/internal/domain/catalog"

	"github.com/google/uuid"
)

// Tx exposes the row-locked operations available inside a registration
// transaction. Implementations must serialize concurrent registrations
// against the same course or discount code.
type Tx interface {
	// CourseForUpdate loads a course under an exclusive row lock.
	// Returns nil, nil when the course does not exist.
	CourseForUpdate(courseID uuid.UUID) (*catalog.Course, error)
	// CountActiveRegistrations counts registrations whose payment status
	// counts against capacity (pending or completed).
	CountActiveRegistrations(courseID uuid.UUID) (int64, error)
	// DiscountForUpdate loads a discount code under an exclusive row lock.
	// Returns nil, nil when the code does not exist.
	DiscountForUpdate(discountID uuid.UUID) (*DiscountCode, error)
	IncrementDiscountUses(discountID uuid.UUID) error
	// InsertRegistration persists the registration. Returns
	// ErrDuplicateConfirmation on a confirmation-number collision.
	InsertRegistration(reg *Registration) error
}

// Store defines the interface for registration data access
type Store interface {
	// InTx runs fn inside one atomic transaction; any error rolls every
	// staged write back.
	InTx(ctx context.Context, fn func(Tx) error) error

	GetByID(ctx context.Context, id uuid.UUID) (*Registration, error)
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Registration, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Registration, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Registration, error)
	Update(ctx context.Context, reg *Registration) error
	CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
	CourseSummaries(ctx context.Context) ([]*CourseSummary, error)
}

// DiscountRepository defines the interface for discount-code data access
type DiscountRepository interface {
	Create(ctx context.Context, code *DiscountCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*DiscountCode, error)
	// GetByCode looks a code up case-insensitively.
	GetByCode(ctx context.Context, code string) (*DiscountCode, error)
	List(ctx context.Context) ([]*DiscountCode, error)
	Update(ctx context.Context, code *DiscountCode) error
	Delete(ctx context.Context, id uuid.UUID) error
}
