// Package ammmath provides the checked fixed-point arithmetic used by the AMM
// modules. All values are 18-decimal fixed-point numbers (math.LegacyDec); the
// operations here never use floating point and never let an arithmetic panic
// escape, so the same inputs produce the same outputs on every platform.
package ammmath

import (
	"cosmossdk.io/math"
)

// Add returns a+b, reporting overflow as an error.
func Add(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, ErrAddOverflow
		}
	}()
	return a.Add(b), nil
}

// Sub returns a-b. Amounts in the AMM domain are non-negative, so a negative
// result is reported as an underflow.
func Sub(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, ErrSubUnderflow
		}
	}()
	res = a.Sub(b)
	if res.IsNegative() {
		return math.LegacyDec{}, ErrSubUnderflow
	}
	return res, nil
}

// Mul returns a*b rounded at the 18th decimal, reporting overflow as an error.
func Mul(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, ErrMulOverflow
		}
	}()
	return a.Mul(b), nil
}

// Div returns a/b rounded at the 18th decimal. Division by zero and internal
// overflow of the widened intermediate are reported as errors.
func Div(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	if b.IsZero() {
		return math.LegacyDec{}, ErrDivZero
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = math.LegacyDec{}, ErrDivOverflow
		}
	}()
	return a.Quo(b), nil
}
