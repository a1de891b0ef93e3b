package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/contact"
	"robocamp/internal/domain/enrollment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory enrollment.Store. InTx runs the callback
// against the same maps; tests are single-goroutine so no locking.
type fakeStore struct {
	courses        map[uuid.UUID]*catalog.Course
	discounts      map[uuid.UUID]*enrollment.DiscountCode
	registrations  map[uuid.UUID]*enrollment.Registration
	failNextInsert int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses:       make(map[uuid.UUID]*catalog.Course),
		discounts:     make(map[uuid.UUID]*enrollment.DiscountCode),
		registrations: make(map[uuid.UUID]*enrollment.Registration),
	}
}

type fakeTx struct {
	store *fakeStore
}

func (s *fakeStore) InTx(_ context.Context, fn func(enrollment.Tx) error) error {
	return fn(&fakeTx{store: s})
}

func (tx *fakeTx) CourseForUpdate(courseID uuid.UUID) (*catalog.Course, error) {
	return tx.store.courses[courseID], nil
}

func (tx *fakeTx) CountActiveRegistrations(courseID uuid.UUID) (int64, error) {
	var n int64
	for _, reg := range tx.store.registrations {
		if reg.CourseID != courseID {
			continue
		}
		if reg.PaymentStatus == enrollment.PaymentPending || reg.PaymentStatus == enrollment.PaymentCompleted {
			n++
		}
	}
	return n, nil
}

func (tx *fakeTx) DiscountForUpdate(discountID uuid.UUID) (*enrollment.DiscountCode, error) {
	return tx.store.discounts[discountID], nil
}

func (tx *fakeTx) IncrementDiscountUses(discountID uuid.UUID) error {
	code, ok := tx.store.discounts[discountID]
	if !ok {
		return errors.New("discount not found")
	}
	code.CurrentUses++
	return nil
}

func (tx *fakeTx) InsertRegistration(reg *enrollment.Registration) error {
	if tx.store.failNextInsert > 0 {
		tx.store.failNextInsert--
		return enrollment.ErrDuplicateConfirmation
	}
	for _, existing := range tx.store.registrations {
		if existing.ConfirmationNumber == reg.ConfirmationNumber {
			return enrollment.ErrDuplicateConfirmation
		}
	}
	tx.store.registrations[reg.ID] = reg
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*enrollment.Registration, error) {
	return s.registrations[id], nil
}

func (s *fakeStore) GetByIDAndUser(_ context.Context, id, userID uuid.UUID) (*enrollment.Registration, error) {
	reg := s.registrations[id]
	if reg == nil || reg.UserID != userID {
		return nil, nil
	}
	return reg, nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*enrollment.Registration, error) {
	var out []*enrollment.Registration
	for _, reg := range s.registrations {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (s *fakeStore) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*enrollment.Registration, error) {
	var out []*enrollment.Registration
	for _, reg := range s.registrations {
		if reg.CourseID == courseID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (s *fakeStore) ListAll(_ context.Context, limit, offset int) ([]*enrollment.Registration, error) {
	var out []*enrollment.Registration
	for _, reg := range s.registrations {
		out = append(out, reg)
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, reg *enrollment.Registration) error {
	if _, ok := s.registrations[reg.ID]; !ok {
		return errors.New("registration not found")
	}
	s.registrations[reg.ID] = reg
	return nil
}

func (s *fakeStore) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	tx := &fakeTx{store: s}
	return tx.CountActiveRegistrations(courseID)
}

func (s *fakeStore) CourseSummaries(_ context.Context) ([]*enrollment.CourseSummary, error) {
	return nil, nil
}

// noopNotifier satisfies Notifier without side effects
type noopNotifier struct{}

func (noopNotifier) RegistrationConfirmed(context.Context, *enrollment.Registration) {}
func (noopNotifier) RegistrationCancelled(context.Context, *enrollment.Registration) {}
func (noopNotifier) ContactReceived(context.Context, *contact.Message)               {}

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *RegistrationService {
	svc := NewRegistrationService(store, noopNotifier{})
	svc.now = func() time.Time { return testNow }
	return svc
}

func testCourse(capacity int) *catalog.Course {
	return &catalog.Course{
		ID:              uuid.New(),
		Title:           "Junior Robotics Explorers",
		MinAge:          7,
		MaxAge:          10,
		Capacity:        capacity,
		Price:           decimal.RequireFromString("300.00"),
		DiscountedPrice: decimal.NewNullDecimal(decimal.RequireFromString("250.00")),
		IsActive:        true,
	}
}

func validRequest(courseID uuid.UUID) *enrollment.CreateRegistrationRequest {
	return &enrollment.CreateRegistrationRequest{
		CourseID:                 courseID,
		ChildFirstName:           "Ada",
		ChildLastName:            "Nguyen",
		ChildDateOfBirth:         "2018-03-15", // 8 years old at testNow
		EmergencyContactName:     "Linh Nguyen",
		EmergencyContactRelation: "mother",
		EmergencyContactPhone:    "+15555550123",
		AgreedToTerms:            true,
	}
}

func TestRegistrationCreate(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	svc := newTestService(store)
	userID := uuid.New()

	reg, err := svc.Create(context.Background(), userID, validRequest(course.ID))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if reg == nil {
		t.Fatal("Expected registration, got nil")
	}

	if reg.PaymentStatus != enrollment.PaymentCompleted {
		t.Errorf("Expected payment status completed, got %s", reg.PaymentStatus)
	}
	if reg.AmountPaid.StringFixed(2) != "250.00" {
		t.Errorf("Expected amount paid 250.00 (discounted course price), got %s", reg.AmountPaid.StringFixed(2))
	}
	if reg.ConfirmationNumber == "" {
		t.Error("Expected a confirmation number")
	}
	if reg.UserID != userID {
		t.Errorf("Expected registration owned by %s, got %s", userID, reg.UserID)
	}
}

func TestRegistrationCreate_TermsNotAgreed(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	svc := newTestService(store)

	req := validRequest(course.ID)
	req.AgreedToTerms = false

	_, err := svc.Create(context.Background(), uuid.New(), req)
	if !errors.Is(err, enrollment.ErrTermsNotAgreed) {
		t.Fatalf("Expected ErrTermsNotAgreed, got %v", err)
	}
	if len(store.registrations) != 0 {
		t.Error("Expected no registration to be persisted")
	}
}

func TestRegistrationCreate_CourseNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), uuid.New(), validRequest(uuid.New()))
	if !errors.Is(err, enrollment.ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}
}

func TestRegistrationCreate_CourseFull(t *testing.T) {
	store := newFakeStore()
	course := testCourse(2)
	store.courses[course.ID] = course
	svc := newTestService(store)

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), uuid.New(), validRequest(course.ID)); err != nil {
			t.Fatalf("Registration %d failed: %v", i+1, err)
		}
	}

	_, err := svc.Create(context.Background(), uuid.New(), validRequest(course.ID))
	if !errors.Is(err, enrollment.ErrCourseFull) {
		t.Fatalf("Expected ErrCourseFull, got %v", err)
	}
}

func TestRegistrationCreate_RefundedSlotFreed(t *testing.T) {
	store := newFakeStore()
	course := testCourse(1)
	store.courses[course.ID] = course
	svc := newTestService(store)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, validRequest(course.ID))
	if err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), uuid.New(), validRequest(course.ID)); !errors.Is(err, enrollment.ErrCourseFull) {
		t.Fatalf("Expected ErrCourseFull while slot is taken, got %v", err)
	}

	if _, err := svc.Cancel(context.Background(), first.ID, userID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), uuid.New(), validRequest(course.ID)); err != nil {
		t.Fatalf("Expected freed slot after refund, got %v", err)
	}
}

func TestRegistrationCreate_AgeBoundaries(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	svc := newTestService(store)

	tests := []struct {
		name    string
		dob     string
		wantErr bool
	}{
		{"age 6 too young", "2019-10-15", true},
		{"age 7 lower bound", "2019-06-15", false},
		{"age 10 upper bound", "2015-10-15", false},
		{"age 11 too old", "2014-12-31", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(course.ID)
			req.ChildDateOfBirth = tt.dob

			_, err := svc.Create(context.Background(), uuid.New(), req)
			if tt.wantErr {
				if !errors.Is(err, enrollment.ErrAgeOutOfRange) {
					t.Fatalf("Expected ErrAgeOutOfRange, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("Expected success, got %v", err)
			}
		})
	}
}

func TestRegistrationCreate_DiscountApplied(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course

	code := &enrollment.DiscountCode{
		ID:                 uuid.New(),
		Code:               "SIBLING10",
		DiscountPercentage: 10,
		IsActive:           true,
	}
	store.discounts[code.ID] = code
	svc := newTestService(store)

	req := validRequest(course.ID)
	req.DiscountCodeID = &code.ID

	reg, err := svc.Create(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// 10% off the discounted course price of 250.00
	if reg.AmountPaid.StringFixed(2) != "225.00" {
		t.Errorf("Expected amount paid 225.00, got %s", reg.AmountPaid.StringFixed(2))
	}
	if reg.DiscountCodeID == nil || *reg.DiscountCodeID != code.ID {
		t.Error("Expected discount code to be recorded on the registration")
	}
	if code.CurrentUses != 1 {
		t.Errorf("Expected discount use count 1, got %d", code.CurrentUses)
	}
}

func TestRegistrationCreate_InvalidDiscountSilentlyIgnored(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course

	code := &enrollment.DiscountCode{
		ID:                 uuid.New(),
		Code:               "EXPIRED",
		DiscountPercentage: 10,
		IsActive:           false,
	}
	store.discounts[code.ID] = code
	svc := newTestService(store)

	req := validRequest(course.ID)
	req.DiscountCodeID = &code.ID

	reg, err := svc.Create(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("Expected registration to succeed despite invalid code, got %v", err)
	}

	if reg.AmountPaid.StringFixed(2) != "250.00" {
		t.Errorf("Expected base price 250.00, got %s", reg.AmountPaid.StringFixed(2))
	}
	if reg.DiscountCodeID != nil {
		t.Error("Expected no discount code recorded")
	}
	if code.CurrentUses != 0 {
		t.Errorf("Expected unchanged use count, got %d", code.CurrentUses)
	}
}

func TestRegistrationCreate_ConfirmationCollisionRetried(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	store.failNextInsert = 1
	svc := newTestService(store)

	reg, err := svc.Create(context.Background(), uuid.New(), validRequest(course.ID))
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if reg == nil {
		t.Fatal("Expected registration after retry")
	}
}

func TestRegistrationCreate_ConfirmationCollisionTwiceFails(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	store.failNextInsert = 2
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), uuid.New(), validRequest(course.ID))
	if !errors.Is(err, enrollment.ErrDuplicateConfirmation) {
		t.Fatalf("Expected ErrDuplicateConfirmation after two collisions, got %v", err)
	}
}

func TestRegistrationCancel(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	svc := newTestService(store)
	userID := uuid.New()

	reg, err := svc.Create(context.Background(), userID, validRequest(course.ID))
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), reg.ID, userID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.PaymentStatus != enrollment.PaymentRefunded {
		t.Errorf("Expected payment status refunded, got %s", cancelled.PaymentStatus)
	}

	// Second cancellation must be rejected
	if _, err := svc.Cancel(context.Background(), reg.ID, userID); !errors.Is(err, enrollment.ErrAlreadyCancelled) {
		t.Fatalf("Expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestRegistrationCancel_WrongUser(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	svc := newTestService(store)
	owner := uuid.New()

	reg, err := svc.Create(context.Background(), owner, validRequest(course.ID))
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), reg.ID, uuid.New()); !errors.Is(err, enrollment.ErrRegistrationNotFound) {
		t.Fatalf("Expected ErrRegistrationNotFound for another user's registration, got %v", err)
	}
}

func TestRegistrationGetAndList(t *testing.T) {
	store := newFakeStore()
	course := testCourse(12)
	store.courses[course.ID] = course
	svc := newTestService(store)
	userID := uuid.New()

	reg, err := svc.Create(context.Background(), userID, validRequest(course.ID))
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	got, err := svc.Get(context.Background(), reg.ID, userID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != reg.ID {
		t.Errorf("Expected registration %s, got %s", reg.ID, got.ID)
	}

	if _, err := svc.Get(context.Background(), reg.ID, uuid.New()); !errors.Is(err, enrollment.ErrRegistrationNotFound) {
		t.Fatalf("Expected ErrRegistrationNotFound for another user, got %v", err)
	}

	regs, err := svc.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(regs) != 1 {
		t.Errorf("Expected 1 registration, got %d", len(regs))
	}
}
