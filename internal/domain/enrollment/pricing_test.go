package enrollment

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeOn(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"birthday already passed this year", date(2016, time.March, 10), date(2026, time.September, 1), 10},
		{"birthday not yet reached this year", date(2016, time.December, 25), date(2026, time.September, 1), 9},
		{"day before birthday", date(2016, time.September, 2), date(2026, time.September, 1), 9},
		{"on the birthday", date(2016, time.September, 1), date(2026, time.September, 1), 10},
		{"day after birthday", date(2016, time.August, 31), date(2026, time.September, 1), 10},
		{"infant", date(2026, time.January, 15), date(2026, time.September, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgeOn(tt.dob, tt.now)
			if got != tt.want {
				t.Errorf("AgeOn(%v, %v) = %d, want %d", tt.dob, tt.now, got, tt.want)
			}
		})
	}
}

func TestDiscounted(t *testing.T) {
	tests := []struct {
		price string
		pct   int
		want  string
	}{
		{"250.00", 10, "225.00"},
		{"300.00", 15, "255.00"},
		{"100.00", 0, "100.00"},
		{"100.00", 100, "0.00"},
		{"99.99", 33, "66.99"},
	}

	for _, tt := range tests {
		price := decimal.RequireFromString(tt.price)
		got := Discounted(price, tt.pct)
		if got.StringFixed(2) != tt.want {
			t.Errorf("Discounted(%s, %d) = %s, want %s", tt.price, tt.pct, got.StringFixed(2), tt.want)
		}
	}
}

func TestDiscountCodeValidateAt(t *testing.T) {
	now := date(2026, time.September, 1)
	past := date(2026, time.January, 1)
	future := date(2026, time.December, 31)
	five := 5

	tests := []struct {
		name string
		code DiscountCode
		want error
	}{
		{"valid open-ended code", DiscountCode{IsActive: true}, nil},
		{"inactive", DiscountCode{IsActive: false}, ErrDiscountInactive},
		{"max uses reached", DiscountCode{IsActive: true, MaxUses: &five, CurrentUses: 5}, ErrDiscountMaxUses},
		{"max uses not reached", DiscountCode{IsActive: true, MaxUses: &five, CurrentUses: 4}, nil},
		{"not yet active", DiscountCode{IsActive: true, StartDate: &future}, ErrDiscountNotYetActive},
		{"expired", DiscountCode{IsActive: true, EndDate: &past}, ErrDiscountExpired},
		{"inside window", DiscountCode{IsActive: true, StartDate: &past, EndDate: &future}, nil},
		{"inactive wins over expired", DiscountCode{IsActive: false, EndDate: &past}, ErrDiscountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.code.ValidateAt(now)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("ValidateAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscountCodeFraction(t *testing.T) {
	code := DiscountCode{DiscountPercentage: 10}
	if got := code.Fraction(); got != 0.10 {
		t.Errorf("Fraction() = %v, want 0.10", got)
	}
}

func TestNewConfirmationNumber(t *testing.T) {
	now := date(2026, time.September, 1)
	pattern := regexp.MustCompile(`^RC-2026-\d{6}$`)

	for i := 0; i < 100; i++ {
		num := NewConfirmationNumber(now)
		if !pattern.MatchString(num) {
			t.Fatalf("confirmation number %q does not match RC-<year>-<6 digits>", num)
		}
	}
}
