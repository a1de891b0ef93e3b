package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCourseBasePrice(t *testing.T) {
	course := Course{Price: decimal.RequireFromString("300.00")}
	if got := course.BasePrice(); !got.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("BasePrice() = %s, want 300.00", got)
	}

	course.DiscountedPrice = decimal.NewNullDecimal(decimal.RequireFromString("250.00"))
	if got := course.BasePrice(); !got.Equal(decimal.RequireFromString("250.00")) {
		t.Errorf("BasePrice() with discounted price = %s, want 250.00", got)
	}
}

func TestCourseAgeEligible(t *testing.T) {
	course := Course{MinAge: 7, MaxAge: 10}

	tests := []struct {
		age  int
		want bool
	}{
		{6, false},
		{7, true},
		{8, true},
		{10, true},
		{11, false},
	}

	for _, tt := range tests {
		if got := course.AgeEligible(tt.age); got != tt.want {
			t.Errorf("AgeEligible(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}
