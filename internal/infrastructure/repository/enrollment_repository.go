package repository

import (
	"context"
	"errors"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/enrollment"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentStore implements enrollment.Store using GORM. Registration
// transactions lock the course row (and the discount row when a code is
// supplied) with SELECT ... FOR UPDATE so that concurrent attempts against
// the same course or code are serialized by Postgres.
type EnrollmentStore struct {
	db *gorm.DB
}

// NewEnrollmentStore creates a new GORM enrollment store
func NewEnrollmentStore(db *gorm.DB) enrollment.Store {
	return &EnrollmentStore{db: db}
}

// enrollmentTx wraps a running transaction with the row-locked operations
// the registration processor needs.
type enrollmentTx struct {
	tx *gorm.DB
}

var _ enrollment.Tx = (*enrollmentTx)(nil)

func (t *enrollmentTx) CourseForUpdate(courseID uuid.UUID) (*catalog.Course, error) {
	var course catalog.Course
	err := t.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (t *enrollmentTx) CountActiveRegistrations(courseID uuid.UUID) (int64, error) {
	var count int64
	err := t.tx.Model(&enrollment.Registration{}).
		Where("course_id = ? AND payment_status IN ?", courseID, enrollment.ActiveStatuses).
		Count(&count).Error
	return count, err
}

func (t *enrollmentTx) DiscountForUpdate(discountID uuid.UUID) (*enrollment.DiscountCode, error) {
	var code enrollment.DiscountCode
	err := t.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&code, "id = ?", discountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

func (t *enrollmentTx) IncrementDiscountUses(discountID uuid.UUID) error {
	return t.tx.Model(&enrollment.DiscountCode{}).
		Where("id = ?", discountID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1")).Error
}

func (t *enrollmentTx) InsertRegistration(reg *enrollment.Registration) error {
	err := t.tx.Create(reg).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return enrollment.ErrDuplicateConfirmation
	}
	return err
}

// InTx runs fn inside one atomic transaction
func (s *EnrollmentStore) InTx(ctx context.Context, fn func(enrollment.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&enrollmentTx{tx: tx})
	})
}

// GetByID retrieves a registration joined with its course, instructor,
// discount code and owner
func (s *EnrollmentStore) GetByID(ctx context.Context, id uuid.UUID) (*enrollment.Registration, error) {
	var reg enrollment.Registration
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Instructor").
		Preload("DiscountCode").
		Preload("User").
		First(&reg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

// GetByIDAndUser retrieves a registration only when it belongs to the user
func (s *EnrollmentStore) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*enrollment.Registration, error) {
	var reg enrollment.Registration
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Instructor").
		Preload("DiscountCode").
		Where("id = ? AND user_id = ?", id, userID).
		First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

// ListByUser retrieves all registrations owned by a user
func (s *EnrollmentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*enrollment.Registration, error) {
	var regs []*enrollment.Registration
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListByCourse retrieves all registrations for a course
func (s *EnrollmentStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*enrollment.Registration, error) {
	var regs []*enrollment.Registration
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// ListAll retrieves registrations across all courses, newest first
func (s *EnrollmentStore) ListAll(ctx context.Context, limit, offset int) ([]*enrollment.Registration, error) {
	var regs []*enrollment.Registration
	err := s.db.WithContext(ctx).
		Preload("Course").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// Update updates an existing registration
func (s *EnrollmentStore) Update(ctx context.Context, reg *enrollment.Registration) error {
	return s.db.WithContext(ctx).Save(reg).Error
}

// CountActiveByCourse counts registrations that hold a capacity slot
func (s *EnrollmentStore) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&enrollment.Registration{}).
		Where("course_id = ? AND payment_status IN ?", courseID, enrollment.ActiveStatuses).
		Count(&count).Error
	return count, err
}

// CourseSummaries aggregates per-course enrollment counts and revenue for
// the admin report
func (s *EnrollmentStore) CourseSummaries(ctx context.Context) ([]*enrollment.CourseSummary, error) {
	var summaries []*enrollment.CourseSummary
	err := s.db.WithContext(ctx).Raw(`
		SELECT c.id AS course_id,
		       c.title,
		       c.capacity,
		       COUNT(r.id) FILTER (WHERE r.payment_status IN ('pending', 'completed')) AS active_count,
		       COUNT(r.id) FILTER (WHERE r.payment_status = 'refunded') AS refunded_count,
		       COUNT(r.id) FILTER (WHERE r.discount_code_id IS NOT NULL) AS discount_count,
		       COALESCE(SUM(r.amount_paid) FILTER (WHERE r.payment_status IN ('pending', 'completed')), 0) AS revenue
		FROM courses c
		LEFT JOIN registrations r ON r.course_id = c.id
		GROUP BY c.id, c.title, c.capacity
		ORDER BY c.title`).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
