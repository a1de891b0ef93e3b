package repository

import (
	"context"
	"errors"

	"robocamp/internal/domain/contact"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository implements contact.Repository using GORM
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new GORM contact-message repository
func NewContactRepository(db *gorm.DB) contact.Repository {
	return &ContactRepository{db: db}
}

// Create stores a new contact message
func (r *ContactRepository) Create(ctx context.Context, msg *contact.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetByID retrieves a contact message by ID
func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var msg contact.Message
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// List retrieves contact messages, newest first
func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]*contact.Message, error) {
	var msgs []*contact.Message
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead flags a message as handled
func (r *ContactRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&contact.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
