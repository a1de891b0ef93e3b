package repository

import (
	"context"
	"errors"
	"strings"

	"robocamp/internal/domain/enrollment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountRepository implements enrollment.DiscountRepository using GORM
type DiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new GORM discount-code repository
func NewDiscountRepository(db *gorm.DB) enrollment.DiscountRepository {
	return &DiscountRepository{db: db}
}

// Create creates a new discount code, storing the code upper-cased
func (r *DiscountRepository) Create(ctx context.Context, code *enrollment.DiscountCode) error {
	code.Code = strings.ToUpper(code.Code)
	return r.db.WithContext(ctx).Create(code).Error
}

// GetByID retrieves a discount code by ID
func (r *DiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*enrollment.DiscountCode, error) {
	var code enrollment.DiscountCode
	err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// GetByCode retrieves a discount code case-insensitively
func (r *DiscountRepository) GetByCode(ctx context.Context, codeStr string) (*enrollment.DiscountCode, error) {
	var code enrollment.DiscountCode
	err := r.db.WithContext(ctx).First(&code, "code = ?", strings.ToUpper(codeStr)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// List retrieves all discount codes
func (r *DiscountRepository) List(ctx context.Context) ([]*enrollment.DiscountCode, error) {
	var codes []*enrollment.DiscountCode
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// Update updates an existing discount code
func (r *DiscountRepository) Update(ctx context.Context, code *enrollment.DiscountCode) error {
	code.Code = strings.ToUpper(code.Code)
	return r.db.WithContext(ctx).Save(code).Error
}

// Delete removes a discount code
func (r *DiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&enrollment.DiscountCode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
