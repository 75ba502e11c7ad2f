package ammmath

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

// powTolerance matches the documented relative error bound of Pow.
var powTolerance = math.LegacyMustNewDecFromStr("0.000000001")

// TestPowInt tests whole-number exponentiation
func TestPowInt(t *testing.T) {
	testCases := []struct {
		name     string
		base     math.LegacyDec
		exp      uint64
		expected math.LegacyDec
	}{
		{
			name:     "two to the tenth",
			base:     math.LegacyMustNewDecFromStr("2"),
			exp:      10,
			expected: math.LegacyMustNewDecFromStr("1024"),
		},
		{
			name:     "zero exponent",
			base:     math.LegacyMustNewDecFromStr("3"),
			exp:      0,
			expected: math.LegacyOneDec(),
		},
		{
			name:     "first power",
			base:     math.LegacyMustNewDecFromStr("1.5"),
			exp:      1,
			expected: math.LegacyMustNewDecFromStr("1.5"),
		},
		{
			name:     "fractional base squared",
			base:     math.LegacyMustNewDecFromStr("1.5"),
			exp:      2,
			expected: math.LegacyMustNewDecFromStr("2.25"),
		},
		{
			name:     "base below one",
			base:     math.LegacyMustNewDecFromStr("0.5"),
			exp:      3,
			expected: math.LegacyMustNewDecFromStr("0.125"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := PowInt(tc.base, tc.exp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Equal(tc.expected) {
				t.Errorf("expected %s, got %s", tc.expected.String(), res.String())
			}
		})
	}
}

// TestPowIntOverflow tests that repeated squaring reports overflow
func TestPowIntOverflow(t *testing.T) {
	_, err := PowInt(hugeDec("1", 40), 3)
	if !errors.Is(err, ErrMulOverflow) {
		t.Errorf("expected multiplication overflow, got %v", err)
	}
}

// TestPow tests fractional exponentiation against known values
func TestPow(t *testing.T) {
	testCases := []struct {
		name     string
		base     math.LegacyDec
		exp      math.LegacyDec
		expected math.LegacyDec
	}{
		{
			name:     "square root of a quarter",
			base:     math.LegacyMustNewDecFromStr("0.25"),
			exp:      math.LegacyMustNewDecFromStr("0.5"),
			expected: math.LegacyMustNewDecFromStr("0.5"),
		},
		{
			name:     "square root of half",
			base:     math.LegacyMustNewDecFromStr("0.5"),
			exp:      math.LegacyMustNewDecFromStr("0.5"),
			expected: math.LegacyMustNewDecFromStr("0.707106781186547524"),
		},
		{
			name:     "exact perfect square",
			base:     math.LegacyMustNewDecFromStr("1.21"),
			exp:      math.LegacyMustNewDecFromStr("0.5"),
			expected: math.LegacyMustNewDecFromStr("1.1"),
		},
		{
			name:     "quarter root",
			base:     math.LegacyMustNewDecFromStr("0.8"),
			exp:      math.LegacyMustNewDecFromStr("0.25"),
			expected: math.LegacyMustNewDecFromStr("0.945741609003180056"),
		},
		{
			name:     "whole plus fractional exponent",
			base:     math.LegacyMustNewDecFromStr("1.5"),
			exp:      math.LegacyMustNewDecFromStr("2.5"),
			expected: math.LegacyMustNewDecFromStr("2.755675960631075360"),
		},
		{
			name:     "whole exponent only",
			base:     math.LegacyMustNewDecFromStr("1.5"),
			exp:      math.LegacyMustNewDecFromStr("3"),
			expected: math.LegacyMustNewDecFromStr("3.375"),
		},
		{
			name:     "exponent of one",
			base:     math.LegacyMustNewDecFromStr("0.123456789"),
			exp:      math.LegacyOneDec(),
			expected: math.LegacyMustNewDecFromStr("0.123456789"),
		},
		{
			name:     "zero exponent",
			base:     math.LegacyMustNewDecFromStr("1.9"),
			exp:      math.LegacyZeroDec(),
			expected: math.LegacyOneDec(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Pow(tc.base, tc.exp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Relative error bound: |got-want| <= tolerance * want
			diff := res.Sub(tc.expected).Abs()
			bound := tc.expected.Abs().Mul(powTolerance)
			if bound.LT(powTolerance) {
				bound = powTolerance
			}
			if diff.GT(bound) {
				t.Errorf("expected %s within %s, got %s", tc.expected.String(), bound.String(), res.String())
			}
		})
	}
}

// TestPowDomain tests the base and exponent domain checks
func TestPowDomain(t *testing.T) {
	testCases := []struct {
		name string
		base math.LegacyDec
		exp  math.LegacyDec
		err  error
	}{
		{
			name: "zero base too low",
			base: math.LegacyZeroDec(),
			exp:  math.LegacyOneDec(),
			err:  ErrPowBaseTooLow,
		},
		{
			name: "base of two too high",
			base: math.LegacyMustNewDecFromStr("2"),
			exp:  math.LegacyOneDec(),
			err:  ErrPowBaseTooHigh,
		},
		{
			name: "negative exponent rejected",
			base: math.LegacyMustNewDecFromStr("1.5"),
			exp:  math.LegacyMustNewDecFromStr("-1"),
			err:  ErrNegativeExponent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Pow(tc.base, tc.exp)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected error %v, got %v", tc.err, err)
			}
		})
	}
}

// TestPowDeterminism verifies the series is stable across evaluations
func TestPowDeterminism(t *testing.T) {
	base := math.LegacyMustNewDecFromStr("0.913043478260869565")
	exp := math.LegacyMustNewDecFromStr("0.333333333333333333")

	first, err := Pow(base, exp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := Pow(base, exp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !again.Equal(first) {
			t.Fatalf("iteration %d: expected %s, got %s", i, first.String(), again.String())
		}
	}
}
