package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"robocamp/internal/domain/enrollment"
	"robocamp/pkg/logger"

	"github.com/google/uuid"
)

// DiscountService handles the standalone discount-code check used by the
// client before submission, plus the admin CRUD for codes. Unlike the
// registration transaction, validation failures here are surfaced as
// typed errors.
type DiscountService struct {
	repo enrollment.DiscountRepository
	now  func() time.Time
}

// NewDiscountService creates a new discount service
func NewDiscountService(repo enrollment.DiscountRepository) *DiscountService {
	return &DiscountService{
		repo: repo,
		now:  time.Now,
	}
}

// ValidateCode checks a code and returns its discount as a fraction.
func (s *DiscountService) ValidateCode(ctx context.Context, code string) (*enrollment.ValidateCodeResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, enrollment.ErrDiscountNotFound
	}

	d, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up discount code: %w", err)
	}
	if d == nil {
		return nil, enrollment.ErrDiscountNotFound
	}

	if err := d.ValidateAt(s.now()); err != nil {
		return nil, err
	}

	return &enrollment.ValidateCodeResponse{
		Code:        d.Code,
		Discount:    d.Fraction(),
		Description: d.Description,
	}, nil
}

// Create creates a new discount code (admin).
func (s *DiscountService) Create(ctx context.Context, req *enrollment.CreateDiscountCodeRequest) (*enrollment.DiscountCode, error) {
	code := &enrollment.DiscountCode{
		ID:                 uuid.New(),
		Code:               strings.ToUpper(req.Code),
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           true,
		MaxUses:            req.MaxUses,
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}

	var err error
	if code.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	if code.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	if err := s.repo.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create discount code: %w", err)
	}

	logger.Info("Discount code %s created (%d%%)", code.Code, code.DiscountPercentage)
	return code, nil
}

// List returns all discount codes (admin).
func (s *DiscountService) List(ctx context.Context) ([]*enrollment.DiscountCode, error) {
	codes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount codes: %w", err)
	}
	return codes, nil
}

// SetActive toggles a code on or off (admin).
func (s *DiscountService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*enrollment.DiscountCode, error) {
	code, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get discount code: %w", err)
	}
	if code == nil {
		return nil, enrollment.ErrDiscountNotFound
	}

	code.IsActive = active
	if err := s.repo.Update(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to update discount code: %w", err)
	}
	return code, nil
}

// Delete removes a discount code (admin).
func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete discount code: %w", err)
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
