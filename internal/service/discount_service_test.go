package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"robocamp/internal/domain/enrollment"

	"github.com/google/uuid"
)

// fakeDiscountRepo is an in-memory enrollment.DiscountRepository
type fakeDiscountRepo struct {
	codes map[uuid.UUID]*enrollment.DiscountCode
}

func newFakeDiscountRepo() *fakeDiscountRepo {
	return &fakeDiscountRepo{codes: make(map[uuid.UUID]*enrollment.DiscountCode)}
}

func (r *fakeDiscountRepo) Create(_ context.Context, code *enrollment.DiscountCode) error {
	r.codes[code.ID] = code
	return nil
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id uuid.UUID) (*enrollment.DiscountCode, error) {
	return r.codes[id], nil
}

func (r *fakeDiscountRepo) GetByCode(_ context.Context, code string) (*enrollment.DiscountCode, error) {
	for _, dc := range r.codes {
		if strings.EqualFold(dc.Code, code) {
			return dc, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) List(_ context.Context) ([]*enrollment.DiscountCode, error) {
	var out []*enrollment.DiscountCode
	for _, dc := range r.codes {
		out = append(out, dc)
	}
	return out, nil
}

func (r *fakeDiscountRepo) Update(_ context.Context, code *enrollment.DiscountCode) error {
	r.codes[code.ID] = code
	return nil
}

func (r *fakeDiscountRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.codes, id)
	return nil
}

func newTestDiscountService(repo *fakeDiscountRepo) *DiscountService {
	svc := NewDiscountService(repo)
	svc.now = func() time.Time { return testNow }
	return svc
}

func seedCode(repo *fakeDiscountRepo, code enrollment.DiscountCode) *enrollment.DiscountCode {
	code.ID = uuid.New()
	repo.codes[code.ID] = &code
	return repo.codes[code.ID]
}

func TestValidateCode(t *testing.T) {
	repo := newFakeDiscountRepo()
	seedCode(repo, enrollment.DiscountCode{
		Code:               "SIBLING10",
		Description:        "Sibling discount",
		DiscountPercentage: 10,
		IsActive:           true,
	})
	svc := newTestDiscountService(repo)

	resp, err := svc.ValidateCode(context.Background(), "sibling10")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Code != "SIBLING10" {
		t.Errorf("Expected code SIBLING10, got %s", resp.Code)
	}
	if resp.Discount != 0.10 {
		t.Errorf("Expected discount fraction 0.10, got %v", resp.Discount)
	}
	if resp.Description != "Sibling discount" {
		t.Errorf("Expected description to round-trip, got %q", resp.Description)
	}
}

func TestValidateCode_Failures(t *testing.T) {
	repo := newFakeDiscountRepo()
	svc := newTestDiscountService(repo)

	yesterday := testNow.AddDate(0, 0, -1)
	tomorrow := testNow.AddDate(0, 0, 1)
	one := 1

	seedCode(repo, enrollment.DiscountCode{Code: "INACTIVE", DiscountPercentage: 10})
	seedCode(repo, enrollment.DiscountCode{Code: "USEDUP", DiscountPercentage: 10, IsActive: true, MaxUses: &one, CurrentUses: 1})
	seedCode(repo, enrollment.DiscountCode{Code: "TOOSOON", DiscountPercentage: 10, IsActive: true, StartDate: &tomorrow})
	seedCode(repo, enrollment.DiscountCode{Code: "TOOLATE", DiscountPercentage: 10, IsActive: true, EndDate: &yesterday})

	tests := []struct {
		code string
		want error
	}{
		{"NOSUCHCODE", enrollment.ErrDiscountNotFound},
		{"", enrollment.ErrDiscountNotFound},
		{"INACTIVE", enrollment.ErrDiscountInactive},
		{"USEDUP", enrollment.ErrDiscountMaxUses},
		{"TOOSOON", enrollment.ErrDiscountNotYetActive},
		{"TOOLATE", enrollment.ErrDiscountExpired},
	}

	for _, tt := range tests {
		_, err := svc.ValidateCode(context.Background(), tt.code)
		if !errors.Is(err, tt.want) {
			t.Errorf("ValidateCode(%q) = %v, want %v", tt.code, err, tt.want)
		}
	}
}

func TestDiscountCreate(t *testing.T) {
	repo := newFakeDiscountRepo()
	svc := newTestDiscountService(repo)
	end := "2026-12-31"

	code, err := svc.Create(context.Background(), &enrollment.CreateDiscountCodeRequest{
		Code:               "earlybird15",
		Description:        "Early bird",
		DiscountPercentage: 15,
		EndDate:            &end,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if code.Code != "EARLYBIRD15" {
		t.Errorf("Expected code stored upper-case, got %s", code.Code)
	}
	if !code.IsActive {
		t.Error("Expected new code to default to active")
	}
	if code.EndDate == nil || code.EndDate.Format("2006-01-02") != end {
		t.Errorf("Expected end date %s, got %v", end, code.EndDate)
	}
}

func TestDiscountSetActive(t *testing.T) {
	repo := newFakeDiscountRepo()
	code := seedCode(repo, enrollment.DiscountCode{Code: "SIBLING10", DiscountPercentage: 10, IsActive: true})
	svc := newTestDiscountService(repo)

	updated, err := svc.SetActive(context.Background(), code.ID, false)
	if err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if updated.IsActive {
		t.Error("Expected code to be deactivated")
	}

	if _, err := svc.ValidateCode(context.Background(), "SIBLING10"); !errors.Is(err, enrollment.ErrDiscountInactive) {
		t.Fatalf("Expected ErrDiscountInactive after deactivation, got %v", err)
	}

	if _, err := svc.SetActive(context.Background(), uuid.New(), true); !errors.Is(err, enrollment.ErrDiscountNotFound) {
		t.Fatalf("Expected ErrDiscountNotFound for unknown id, got %v", err)
	}
}
