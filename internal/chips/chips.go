// Package chips holds the integer arithmetic shared by the hand engine and
// settlement. Every division of chips or money goes through these helpers so
// rounding happens in exactly one place.
package chips

import (
	"fmt"
	"math"
)

// FullShare is 100% expressed in basis points.
const FullShare int64 = 10_000

// RoundDiv divides num by den rounding half away from zero. den must be positive.
func RoundDiv(num, den int64) int64 {
	if den <= 0 {
		panic(fmt.Sprintf("chips: non-positive divisor %d", den))
	}
	q, r := num/den, num%den
	if r < 0 {
		r = -r
	}
	if 2*r >= den {
		if num < 0 {
			return q - 1
		}
		return q + 1
	}
	return q
}

// CeilDiv divides a non-negative num by den rounding up.
func CeilDiv(num, den int64) int64 {
	if den <= 0 {
		panic(fmt.Sprintf("chips: non-positive divisor %d", den))
	}
	return (num + den - 1) / den
}

// Percent returns amount * basisPoints / FullShare rounded to the nearest unit.
func Percent(amount, basisPoints int64) int64 {
	return RoundDiv(amount*basisPoints, FullShare)
}

// Split divides amount evenly between n recipients. The remainder is always
// smaller than n and must be handed out by the caller one unit at a time.
func Split(amount int64, n int) (share, remainder int64) {
	if n <= 0 {
		return 0, amount
	}
	return amount / int64(n), amount % int64(n)
}

// BasisPoints converts a fraction such as 0.35 into basis points. It is the only
// place a float enters the chip arithmetic and it is used once, at configuration time.
func BasisPoints(fraction float64) int64 {
	return int64(math.Round(fraction * float64(FullShare)))
}
