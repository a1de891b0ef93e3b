package enrollment

import (
	"time"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of a registration
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ActiveStatuses are the payment states that count against course capacity.
// Refunded registrations free their slot.
var ActiveStatuses = []PaymentStatus{PaymentPending, PaymentCompleted}

// DiscountCode represents a promotional code. Codes are stored upper-case
// and looked up case-insensitively. CurrentUses only ever grows; a
// cancelled registration does not give its use back.
type DiscountCode struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Code               string     `json:"code" gorm:"unique;not null"`
	Description        string     `json:"description"`
	DiscountPercentage int        `json:"discount_percentage" gorm:"not null;check:discount_percentage >= 0 AND discount_percentage <= 100"`
	IsActive           bool       `json:"is_active" gorm:"not null;default:true"`
	MaxUses            *int       `json:"max_uses"`
	CurrentUses        int        `json:"current_uses" gorm:"not null;default:0"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// Registration represents a child's enrollment in a course
type Registration struct {
	ID                       uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID                   uuid.UUID       `json:"user_id" gorm:"type:uuid;not null"`
	CourseID                 uuid.UUID       `json:"course_id" gorm:"type:uuid;not null"`
	ChildFirstName           string          `json:"child_first_name" gorm:"not null"`
	ChildLastName            string          `json:"child_last_name" gorm:"not null"`
	ChildDateOfBirth         time.Time       `json:"child_date_of_birth" gorm:"not null"`
	ChildGradeLevel          string          `json:"child_grade_level"`
	ChildAllergies           *string         `json:"child_allergies"`
	ChildSpecialNeeds        *string         `json:"child_special_needs"`
	EmergencyContactName     string          `json:"emergency_contact_name" gorm:"not null"`
	EmergencyContactRelation string          `json:"emergency_contact_relation" gorm:"not null"`
	EmergencyContactPhone    string          `json:"emergency_contact_phone" gorm:"not null"`
	AgreedToTerms            bool            `json:"agreed_to_terms" gorm:"not null"`
	PhotoRelease             bool            `json:"photo_release" gorm:"not null;default:false"`
	ConfirmationNumber       string          `json:"confirmation_number" gorm:"unique;not null"`
	PaymentStatus            PaymentStatus   `json:"payment_status" gorm:"type:text;not null;default:pending"`
	AmountPaid               decimal.Decimal `json:"amount_paid" gorm:"type:numeric(10,2);not null"`
	DiscountCodeID           *uuid.UUID      `json:"discount_code_id" gorm:"type:uuid"`
	CreatedAt                time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt                time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	Course                   *catalog.Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	DiscountCode             *DiscountCode   `json:"discount_code,omitempty" gorm:"foreignKey:DiscountCodeID"`
	User                     *user.User      `json:"-" gorm:"foreignKey:UserID"`
}

// ChildFullName returns the full name of the registered child.
func (r *Registration) ChildFullName() string {
	return r.ChildFirstName + " " + r.ChildLastName
}

// Owner returns the minimal projection of the owning user, when loaded.
func (r *Registration) Owner() *user.Projection {
	if r.User == nil {
		return nil
	}
	p := r.User.Project()
	return &p
}

// CourseSummary is one row of the admin enrollment report.
type CourseSummary struct {
	CourseID      uuid.UUID       `json:"course_id"`
	Title         string          `json:"title"`
	Capacity      int             `json:"capacity"`
	ActiveCount   int             `json:"active_count"`
	RefundedCount int             `json:"refunded_count"`
	DiscountCount int             `json:"discount_count"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// CreateRegistrationRequest represents the request to register a child
type CreateRegistrationRequest struct {
	CourseID                 uuid.UUID  `json:"course_id" validate:"required"`
	ChildFirstName           string     `json:"child_first_name" validate:"required,min=1,max=50"`
	ChildLastName            string     `json:"child_last_name" validate:"required,min=1,max=50"`
	ChildDateOfBirth         string     `json:"child_date_of_birth" validate:"required,datetime=2006-01-02"`
	ChildGradeLevel          string     `json:"child_grade_level" validate:"max=20"`
	ChildAllergies           *string    `json:"child_allergies,omitempty" validate:"omitempty,max=1000"`
	ChildSpecialNeeds        *string    `json:"child_special_needs,omitempty" validate:"omitempty,max=1000"`
	EmergencyContactName     string     `json:"emergency_contact_name" validate:"required,min=1,max=100"`
	EmergencyContactRelation string     `json:"emergency_contact_relation" validate:"required,min=1,max=50"`
	EmergencyContactPhone    string     `json:"emergency_contact_phone" validate:"required,min=7,max=20"`
	AgreedToTerms            bool       `json:"agreed_to_terms"`
	PhotoRelease             bool       `json:"photo_release"`
	DiscountCodeID           *uuid.UUID `json:"discount_code_id,omitempty"`
}

// ValidateCodeResponse is the result of the standalone discount check.
// Discount is the percentage converted to a fraction for direct
// multiplication by the caller.
type ValidateCodeResponse struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	Description string  `json:"description"`
}

// CreateDiscountCodeRequest represents the admin request to create a code
type CreateDiscountCodeRequest struct {
	Code               string  `json:"code" validate:"required,min=2,max=30,alphanum"`
	Description        string  `json:"description" validate:"max=500"`
	DiscountPercentage int     `json:"discount_percentage" validate:"gte=0,lte=100"`
	IsActive           *bool   `json:"is_active,omitempty"`
	MaxUses            *int    `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	StartDate          *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate            *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
