package chips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDiv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num, den, want int64
	}{
		{10, 4, 3},   // 2.5 rounds up
		{9, 4, 2},    // 2.25
		{11, 4, 3},   // 2.75
		{-10, 4, -3}, // -2.5 rounds away from zero
		{-9, 4, -2},
		{0, 7, 0},
		{100, 1, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundDiv(tt.num, tt.den), "%d/%d", tt.num, tt.den)
	}
}

func TestRoundDivPanicsOnZero(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { RoundDiv(1, 0) })
}

func TestCeilDiv(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(4), CeilDiv(10, 3))
	assert.Equal(t, int64(3), CeilDiv(9, 3))
	assert.Equal(t, int64(0), CeilDiv(0, 3))
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(650), Percent(1000, 6500))
	assert.Equal(t, int64(333), Percent(1000, 3333))
	assert.Equal(t, int64(2), Percent(3, 5000)) // 1.5 rounds up
	assert.Equal(t, int64(1000), Percent(1000, FullShare))
}

func TestSplitConservesAmount(t *testing.T) {
	t.Parallel()

	for amount := int64(0); amount < 200; amount++ {
		for n := 1; n <= 9; n++ {
			share, rem := Split(amount, n)
			assert.Less(t, rem, int64(n))
			assert.Equal(t, amount, share*int64(n)+rem)
		}
	}

	share, rem := Split(50, 0)
	assert.Zero(t, share)
	assert.Equal(t, int64(50), rem)
}

func TestBasisPoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(6500), BasisPoints(0.65))
	assert.Equal(t, int64(3333), BasisPoints(0.3333))
	assert.Equal(t, FullShare, BasisPoints(0.5)+BasisPoints(0.3)+BasisPoints(0.2))
}
