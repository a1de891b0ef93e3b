package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Instructor represents a course instructor
type Instructor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Bio       string    `json:"bio"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Course represents a robotics course offering. Capacity is a static upper
// bound on non-refunded registrations.
type Course struct {
	ID              uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title           string              `json:"title" gorm:"not null"`
	Description     string              `json:"description"`
	MinAge          int                 `json:"min_age" gorm:"not null;check:min_age >= 0"`
	MaxAge          int                 `json:"max_age" gorm:"not null;check:max_age >= min_age"`
	Capacity        int                 `json:"capacity" gorm:"not null;check:capacity > 0"`
	Price           decimal.Decimal     `json:"price" gorm:"type:numeric(10,2);not null"`
	DiscountedPrice decimal.NullDecimal `json:"discounted_price" gorm:"type:numeric(10,2)"`
	StartDate       time.Time           `json:"start_date" gorm:"not null"`
	EndDate         time.Time           `json:"end_date" gorm:"not null"`
	Schedule        string              `json:"schedule"`
	Location        string              `json:"location"`
	InstructorID    *uuid.UUID          `json:"instructor_id" gorm:"type:uuid"`
	ImageURL        string              `json:"image_url"`
	IsActive        bool                `json:"is_active" gorm:"not null;default:true"`
	CreatedAt       time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
	Instructor      *Instructor         `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
}

// BasePrice returns the price a registration starts from: the discounted
// price when one is set, the regular price otherwise.
func (c *Course) BasePrice() decimal.Decimal {
	if c.DiscountedPrice.Valid {
		return c.DiscountedPrice.Decimal
	}
	return c.Price
}

// AgeEligible reports whether a child of the given age may register.
// Both bounds are inclusive.
func (c *Course) AgeEligible(age int) bool {
	return age >= c.MinAge && age <= c.MaxAge
}

// CreateCourseRequest represents the admin request to create a course
type CreateCourseRequest struct {
	Title           string  `json:"title" validate:"required,min=3,max=200"`
	Description     string  `json:"description" validate:"max=5000"`
	MinAge          int     `json:"min_age" validate:"gte=0,lte=18"`
	MaxAge          int     `json:"max_age" validate:"gte=0,lte=18,gtefield=MinAge"`
	Capacity        int     `json:"capacity" validate:"required,gt=0"`
	Price           string  `json:"price" validate:"required"`
	DiscountedPrice *string `json:"discounted_price,omitempty"`
	StartDate       string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Schedule        string  `json:"schedule" validate:"max=200"`
	Location        string  `json:"location" validate:"max=200"`
	InstructorID    *string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url"`
}

// UpdateCourseRequest represents the admin request to update a course.
// Nil fields are left unchanged.
type UpdateCourseRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	MinAge          *int    `json:"min_age,omitempty" validate:"omitempty,gte=0,lte=18"`
	MaxAge          *int    `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=18"`
	Capacity        *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Price           *string `json:"price,omitempty"`
	DiscountedPrice *string `json:"discounted_price,omitempty"`
	StartDate       *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Schedule        *string `json:"schedule,omitempty" validate:"omitempty,max=200"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=200"`
	InstructorID    *string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
	ImageURL        *string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// CreateInstructorRequest represents the admin request to create an instructor
type CreateInstructorRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Bio      string `json:"bio" validate:"max=2000"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}
