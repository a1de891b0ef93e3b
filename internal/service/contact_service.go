package service

import (
	"context"
	"errors"
	"fmt"

	"robocamp/internal/domain/contact"
	"robocamp/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactService stores public contact-form submissions and lets admins
// work through them.
type ContactService struct {
	repo     contact.Repository
	notifier Notifier
}

// NewContactService creates a new contact service
func NewContactService(repo contact.Repository, notifier Notifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

// Create stores a contact message and notifies the back office.
func (s *ContactService) Create(ctx context.Context, req *contact.CreateMessageRequest) (*contact.Message, error) {
	msg := &contact.Message{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Message,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	logger.Info("Contact message %s received from %s", msg.ID, msg.Email)
	s.notifier.ContactReceived(ctx, msg)
	return msg, nil
}

// List returns contact messages, newest first (admin).
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]*contact.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	msgs, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

// MarkRead flags a message as handled (admin).
func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contact.ErrMessageNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}
	return nil
}
