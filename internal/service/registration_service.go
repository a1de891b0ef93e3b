package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"robocamp/internal/domain/enrollment"
	"robocamp/pkg/logger"

	"github.com/google/uuid"
)

// RegistrationService owns the registration transaction: capacity check,
// age eligibility, discount application and pricing all execute inside one
// store transaction so no concurrent attempt can overbook a course or
// overspend a discount code.
type RegistrationService struct {
	store    enrollment.Store
	notifier Notifier
	now      func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(store enrollment.Store, notifier Notifier) *RegistrationService {
	return &RegistrationService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create registers a child for a course. Validation failures abort the
// whole transaction with no partial writes.
//
// A supplied discount code is applied only when every validity condition
// holds; otherwise the registration silently proceeds at the base price.
// This mirrors the standalone validate endpoint asymmetrically on purpose:
// registration never fails because of a bad code.
func (s *RegistrationService) Create(ctx context.Context, userID uuid.UUID, req *enrollment.CreateRegistrationRequest) (*enrollment.Registration, error) {
	if !req.AgreedToTerms {
		return nil, enrollment.ErrTermsNotAgreed
	}

	dob, err := time.Parse("2006-01-02", req.ChildDateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid child_date_of_birth: %w", err)
	}

	var created *enrollment.Registration
	register := func() error {
		return s.store.InTx(ctx, func(tx enrollment.Tx) error {
			now := s.now()

			course, err := tx.CourseForUpdate(req.CourseID)
			if err != nil {
				return fmt.Errorf("failed to load course: %w", err)
			}
			if course == nil {
				return enrollment.ErrCourseNotFound
			}

			count, err := tx.CountActiveRegistrations(course.ID)
			if err != nil {
				return fmt.Errorf("failed to count registrations: %w", err)
			}
			if count >= int64(course.Capacity) {
				return fmt.Errorf("%w: %q has reached its capacity of %d",
					enrollment.ErrCourseFull, course.Title, course.Capacity)
			}

			age := enrollment.AgeOn(dob, now)
			if !course.AgeEligible(age) {
				return fmt.Errorf("%w: child is %d, course accepts ages %d to %d",
					enrollment.ErrAgeOutOfRange, age, course.MinAge, course.MaxAge)
			}

			price := course.BasePrice()

			var discountID *uuid.UUID
			if req.DiscountCodeID != nil {
				code, err := tx.DiscountForUpdate(*req.DiscountCodeID)
				if err != nil {
					return fmt.Errorf("failed to load discount code: %w", err)
				}
				if code != nil && code.UsableAt(now) {
					price = enrollment.Discounted(price, code.DiscountPercentage)
					if err := tx.IncrementDiscountUses(code.ID); err != nil {
						return fmt.Errorf("failed to increment discount uses: %w", err)
					}
					discountID = &code.ID
				} else {
					logger.Info("Discount code %v not applied for user %s, proceeding at base price",
						req.DiscountCodeID, userID)
				}
			}

			reg := &enrollment.Registration{
				ID:                       uuid.New(),
				UserID:                   userID,
				CourseID:                 course.ID,
				ChildFirstName:           req.ChildFirstName,
				ChildLastName:            req.ChildLastName,
				ChildDateOfBirth:         dob,
				ChildGradeLevel:          req.ChildGradeLevel,
				ChildAllergies:           req.ChildAllergies,
				ChildSpecialNeeds:        req.ChildSpecialNeeds,
				EmergencyContactName:     req.EmergencyContactName,
				EmergencyContactRelation: req.EmergencyContactRelation,
				EmergencyContactPhone:    req.EmergencyContactPhone,
				AgreedToTerms:            req.AgreedToTerms,
				PhotoRelease:             req.PhotoRelease,
				ConfirmationNumber:       enrollment.NewConfirmationNumber(now),
				PaymentStatus:            enrollment.PaymentCompleted,
				AmountPaid:               price,
				DiscountCodeID:           discountID,
			}

			if err := tx.InsertRegistration(reg); err != nil {
				return err
			}

			created = reg
			return nil
		})
	}

	err = register()
	if errors.Is(err, enrollment.ErrDuplicateConfirmation) {
		logger.Warn("Confirmation number collision for user %s, retrying with a fresh number", userID)
		err = register()
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Registration %s created for course %s, confirmation %s, amount %s",
		created.ID, created.CourseID, created.ConfirmationNumber, created.AmountPaid.StringFixed(2))

	joined, err := s.store.GetByID(ctx, created.ID)
	if err != nil || joined == nil {
		// The registration is committed; the joined reload is best effort.
		logger.Warn("Failed to reload registration %s with associations: %v", created.ID, err)
		s.notifier.RegistrationConfirmed(ctx, created)
		return created, nil
	}

	s.notifier.RegistrationConfirmed(ctx, joined)
	return joined, nil
}

// Get returns a registration owned by the given user.
func (s *RegistrationService) Get(ctx context.Context, id, userID uuid.UUID) (*enrollment.Registration, error) {
	reg, err := s.store.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	if reg == nil {
		return nil, enrollment.ErrRegistrationNotFound
	}
	return reg, nil
}

// ListForUser returns all registrations owned by the given user.
func (s *RegistrationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*enrollment.Registration, error) {
	regs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// Cancel marks a registration refunded. The amount paid is untouched and a
// consumed discount use is not given back; the capacity slot is freed
// because refunded registrations no longer count against capacity.
func (s *RegistrationService) Cancel(ctx context.Context, id, userID uuid.UUID) (*enrollment.Registration, error) {
	reg, err := s.store.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	if reg == nil {
		return nil, enrollment.ErrRegistrationNotFound
	}
	if reg.PaymentStatus == enrollment.PaymentRefunded {
		return nil, enrollment.ErrAlreadyCancelled
	}

	reg.PaymentStatus = enrollment.PaymentRefunded
	reg.UpdatedAt = s.now()
	if err := s.store.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to cancel registration: %w", err)
	}

	logger.Info("Registration %s cancelled by user %s", reg.ID, userID)
	s.notifier.RegistrationCancelled(ctx, reg)
	return reg, nil
}

// ListByCourse returns all registrations for a course (admin).
func (s *RegistrationService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*enrollment.Registration, error) {
	regs, err := s.store.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course registrations: %w", err)
	}
	return regs, nil
}

// ListAll returns registrations across all courses (admin).
func (s *RegistrationService) ListAll(ctx context.Context, limit, offset int) ([]*enrollment.Registration, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	regs, err := s.store.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// Summary returns the per-course enrollment report (admin).
func (s *RegistrationService) Summary(ctx context.Context) ([]*enrollment.CourseSummary, error) {
	summaries, err := s.store.CourseSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment summary: %w", err)
	}
	return summaries, nil
}
