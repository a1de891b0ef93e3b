package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMessageNotFound is returned when no contact message has the given id.
var ErrMessageNotFound = errors.New("contact message not found")

// Message represents an inquiry submitted through the public contact form
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message" gorm:"column:message;not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName keeps the table name aligned with the schema migrations.
func (Message) TableName() string { return "contact_messages" }

// CreateMessageRequest represents the public contact form payload
type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// Repository defines the interface for contact message data access
type Repository interface {
	Create(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	List(ctx context.Context, limit, offset int) ([]*Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
