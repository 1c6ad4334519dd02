package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateValue_PinnedCents(t *testing.T) {
	cases := []struct {
		count int
		unit  float64
		want  Money
	}{
		{0, 0.08, 0},
		{1, 0.08, 8},
		{3, 0.08, 24},
		{1000, 0.08, 8000},
		{7, 0.03, 21},
		{12345, 0.01, 12345},
		{3, 0.1, 30},
		{10, 0.07, 70},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EstimateValue(tc.count, tc.unit), "count=%d unit=%v", tc.count, tc.unit)
	}
}

func TestEstimateValue_HalfCentRoundsToEven(t *testing.T) {
	// 0.005 per event puts odd counts exactly on a half cent.
	assert.Equal(t, Money(0), EstimateValue(1, 0.005))  // 0.005 -> 0.00
	assert.Equal(t, Money(2), EstimateValue(3, 0.005))  // 0.015 -> 0.02
	assert.Equal(t, Money(2), EstimateValue(5, 0.005))  // 0.025 -> 0.02
	assert.Equal(t, Money(4), EstimateValue(7, 0.005))  // 0.035 -> 0.04
	assert.Equal(t, Money(1), EstimateValue(2, 0.005))  // 0.010 exact
	assert.Equal(t, Money(12), EstimateValue(1, 0.125)) // 0.125 -> 0.12
	assert.Equal(t, Money(38), EstimateValue(3, 0.125)) // 0.375 -> 0.38
}

func TestEstimateValue_NonPositive(t *testing.T) {
	assert.Equal(t, Money(0), EstimateValue(-4, 0.08))
	assert.Equal(t, Money(0), EstimateValue(10, -0.08))
	assert.Equal(t, Money(0), EstimateValue(10, 0))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0).String())
	assert.Equal(t, "$0.24", Money(24).String())
	assert.Equal(t, "$12.05", Money(1205).String())
	assert.Equal(t, "$1,234.56", Money(123456).String())
	assert.Equal(t, "-$0.50", Money(-50).String())
	assert.InDelta(t, 12.05, Money(1205).Dollars(), 1e-9)
}
