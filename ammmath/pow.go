package ammmath

import (
	"cosmossdk.io/math"
)

var (
	// PowPrecision bounds the truncation error of the fractional power
	// series; the relative error of Pow stays below 1e-9.
	PowPrecision = math.LegacyNewDecWithPrec(1, 10)

	// MinPowBase and MaxPowBase bound the domain of Pow. The binomial
	// series converges only for bases in (0, 2).
	MinPowBase = math.LegacyNewDecWithPrec(1, 18)
	MaxPowBase = math.LegacyNewDec(2).Sub(math.LegacyNewDecWithPrec(1, 18))
)

// PowInt returns base^exp for a whole-number exponent using exponentiation by
// squaring.
func PowInt(base math.LegacyDec, exp uint64) (math.LegacyDec, error) {
	result := math.LegacyOneDec()
	b := base
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			r, err := Mul(result, b)
			if err != nil {
				return math.LegacyDec{}, err
			}
			result = r
		}
		// Skip the final squaring so a large intermediate cannot
		// overflow after the result is already complete.
		if e > 1 {
			sq, err := Mul(b, b)
			if err != nil {
				return math.LegacyDec{}, err
			}
			b = sq
		}
	}
	return result, nil
}

// Pow returns base^exp for a non-negative, possibly fractional exponent. The
// whole part of the exponent is computed exactly via PowInt and the fractional
// part through a binomial series truncated at PowPrecision.
func Pow(base, exp math.LegacyDec) (math.LegacyDec, error) {
	if base.LT(MinPowBase) {
		return math.LegacyDec{}, ErrPowBaseTooLow
	}
	if base.GT(MaxPowBase) {
		return math.LegacyDec{}, ErrPowBaseTooHigh
	}
	if exp.IsNegative() {
		return math.LegacyDec{}, ErrNegativeExponent
	}

	whole := exp.TruncateDec()
	remain := exp.Sub(whole)

	wholePow, err := PowInt(base, uint64(whole.TruncateInt64()))
	if err != nil {
		return math.LegacyDec{}, err
	}
	if remain.IsZero() {
		return wholePow, nil
	}

	return Mul(wholePow, powApprox(base, remain, PowPrecision))
}

// powApprox computes base^exp for exp in [0, 1) with the binomial series
// (1+x)^a = 1 + ax + a(a-1)x^2/2! + ..., where x = base-1. Terms alternate
// and shrink for bases in (0, 2), so summing until a term drops below the
// precision bounds the error by that precision.
func powApprox(base, exp, precision math.LegacyDec) math.LegacyDec {
	if exp.IsZero() {
		return math.LegacyOneDec()
	}

	one := math.LegacyOneDec()
	x := base.Sub(one)
	term := math.LegacyOneDec()
	sum := math.LegacyOneDec()

	for i := int64(1); term.Abs().GTE(precision); i++ {
		k := math.LegacyNewDec(i)
		// term_i = term_{i-1} * (exp - (i-1)) * x / i
		term = term.Mul(exp.Sub(k.Sub(one))).Mul(x).Quo(k)
		if term.IsZero() {
			break
		}
		sum = sum.Add(term)
	}
	return sum
}
