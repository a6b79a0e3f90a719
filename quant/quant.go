// Package quant implements the bidirectional maps between engineering units
// and fixed-width unsigned wire codes described in spec §4.2.
//
// Two shapes are provided: Affine (continuous range divided evenly across
// 2^w codes) and Step (fixed-size quantisation step, as many codes as the
// domain needs). Both round half away from zero and clamp on decode only;
// encode rejects out-of-domain input rather than silently clamping.
package quant

import (
	"fmt"
	"math"

	"github.com/matthewgream/iotdata/errs"
)

// Affine maps a closed interval [Low, High] onto the 2^Width unsigned codes
// using code = round((value-Low) * (2^Width-1) / (High-Low)).
//
// Position (§3) is the canonical user: 24-bit lat/lon axes with a
// 2^24-1 denominator, which this type reproduces exactly when Width==24.
type Affine struct {
	Low, High float64
	Width     int
}

func (a Affine) span() float64 {
	return float64((uint32(1) << uint(a.Width)) - 1)
}

// Encode converts an engineering-unit value to its wire code.
//
// Returns errs.ErrFieldRange if value is outside [Low, High].
func (a Affine) Encode(value float64) (uint32, error) {
	if value < a.Low || value > a.High {
		return 0, fmt.Errorf("%w: %g not in [%g,%g]", errs.ErrFieldRange, value, a.Low, a.High)
	}
	code := roundHalfAwayFromZero((value - a.Low) * a.span() / (a.High - a.Low))

	return clampCode(code, a.Width), nil
}

// Decode converts a wire code back to its engineering-unit value. Decode
// never fails: codes are clamped into [0, 2^Width-1] first.
func (a Affine) Decode(code uint32) float64 {
	code = clampCode(float64(code), a.Width)

	return a.Low + float64(code)*(a.High-a.Low)/a.span()
}

// Step maps a closed interval [Low, High] onto codes spaced Step apart:
// code = round((value-Low)/Step).
type Step struct {
	Low, High, Step float64
	Width           int
}

func (s Step) maxCode() float64 {
	return math.Round((s.High - s.Low) / s.Step)
}

// Encode converts an engineering-unit value to its wire code.
//
// Returns errs.ErrFieldRange if value is outside [Low, High].
func (s Step) Encode(value float64) (uint32, error) {
	if value < s.Low || value > s.High {
		return 0, fmt.Errorf("%w: %g not in [%g,%g]", errs.ErrFieldRange, value, s.Low, s.High)
	}
	code := roundHalfAwayFromZero((value - s.Low) / s.Step)
	if code > s.maxCode() {
		code = s.maxCode()
	}

	return clampCode(code, s.Width), nil
}

// Decode converts a wire code back to its engineering-unit value.
func (s Step) Decode(code uint32) float64 {
	c := float64(code)
	if c > s.maxCode() {
		c = s.maxCode()
	}

	return s.Low + c*s.Step
}

// roundHalfAwayFromZero implements the rounding rule spec §4.2 mandates,
// the same half-away-from-zero rule math.Round applies; spelled out here
// so the rule is documented at the one place it matters.
func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}

	return math.Ceil(v - 0.5)
}

func clampCode(code float64, width int) uint32 {
	maxVal := float64((uint32(1) << uint(width)) - 1)
	if code < 0 {
		return 0
	}
	if code > maxVal {
		return uint32(maxVal)
	}

	return uint32(code)
}
