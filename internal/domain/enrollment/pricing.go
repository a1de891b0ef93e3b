package enrollment

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// AgeOn returns the number of completed birthdays as of the given date:
// the calendar-year difference, reduced by one when the birthday has not
// yet occurred this year.
func AgeOn(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// Discounted reduces price by pct percent, rounded to cents.
func Discounted(price decimal.Decimal, pct int) decimal.Decimal {
	factor := decimal.NewFromInt(int64(100 - pct)).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

// ValidateAt checks every condition a discount code must satisfy to be
// applied at the given time, returning the first failure.
func (d *DiscountCode) ValidateAt(now time.Time) error {
	if !d.IsActive {
		return ErrDiscountInactive
	}
	if d.MaxUses != nil && d.CurrentUses >= *d.MaxUses {
		return ErrDiscountMaxUses
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return ErrDiscountNotYetActive
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return ErrDiscountExpired
	}
	return nil
}

// UsableAt reports whether the code can be applied at the given time.
func (d *DiscountCode) UsableAt(now time.Time) bool {
	return d.ValidateAt(now) == nil
}

// Fraction returns the percentage as a fraction (10 -> 0.10).
func (d *DiscountCode) Fraction() float64 {
	return float64(d.DiscountPercentage) / 100
}

// NewConfirmationNumber generates a candidate confirmation number of the
// form RC-<year>-<6 digits>. Uniqueness is enforced by the database; on a
// collision the caller generates a fresh candidate.
func NewConfirmationNumber(now time.Time) string {
	return fmt.Sprintf("RC-%d-%06d", now.Year(), rand.Intn(1_000_000))
}
