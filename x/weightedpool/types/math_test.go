package types

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/amm-dex/ammmath"
)

// calcTolerance absorbs the power-series truncation of the fixed-point
// engine. The series terminates at 1e-10, so 1e-8 leaves plenty of room for
// values in the hundreds.
var calcTolerance = math.LegacyNewDecWithPrec(1, 8)

func closeEnough(got, want math.LegacyDec) bool {
	return got.Sub(want).Abs().LTE(calcTolerance)
}

func TestCalcSpotPrice(t *testing.T) {
	testCases := []struct {
		name      string
		balanceIn string
		weightIn  string
		balanceOut string
		weightOut string
		swapFee   string
		expected  string
	}{
		{
			name:      "equal weights no fee",
			balanceIn: "400", weightIn: "10",
			balanceOut: "100", weightOut: "10",
			swapFee:  "0",
			expected: "4",
		},
		{
			name:      "skewed balances no fee",
			balanceIn: "400", weightIn: "10",
			balanceOut: "1", weightOut: "10",
			swapFee:  "0",
			expected: "400",
		},
		{
			name:      "fee marks the price up",
			balanceIn: "400", weightIn: "10",
			balanceOut: "1", weightOut: "10",
			swapFee:  "0.0015",
			expected: "400.600901352028042063",
		},
		{
			name:      "weight ratio shifts the price",
			balanceIn: "100", weightIn: "30",
			balanceOut: "100", weightOut: "10",
			swapFee:  "0",
			expected: "0.333333333333333333",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalcSpotPrice(
				math.LegacyMustNewDecFromStr(tc.balanceIn),
				math.LegacyMustNewDecFromStr(tc.weightIn),
				math.LegacyMustNewDecFromStr(tc.balanceOut),
				math.LegacyMustNewDecFromStr(tc.weightOut),
				math.LegacyMustNewDecFromStr(tc.swapFee),
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := math.LegacyMustNewDecFromStr(tc.expected)
			if !closeEnough(got, want) {
				t.Errorf("expected %s, got %s", want.String(), got.String())
			}
		})
	}
}

func TestCalcSpotPriceZeroWeight(t *testing.T) {
	_, err := CalcSpotPrice(
		math.LegacyNewDec(400), math.LegacyZeroDec(),
		math.LegacyNewDec(100), math.LegacyNewDec(10),
		math.LegacyZeroDec(),
	)
	if !errors.Is(err, ammmath.ErrDivZero) {
		t.Errorf("expected ErrDivZero, got %v", err)
	}
}

func TestCalcOutGivenIn(t *testing.T) {
	testCases := []struct {
		name     string
		amountIn string
		swapFee  string
		expected string
	}{
		{
			name:     "equal weights no fee",
			amountIn: "100",
			swapFee:  "0",
			expected: "20",
		},
		{
			name:     "fee reduces the output",
			amountIn: "100",
			swapFee:  "0.0015",
			expected: "19.975992797839351805",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalcOutGivenIn(
				math.LegacyNewDec(400), math.LegacyNewDec(10),
				math.LegacyNewDec(100), math.LegacyNewDec(10),
				math.LegacyMustNewDecFromStr(tc.amountIn),
				math.LegacyMustNewDecFromStr(tc.swapFee),
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := math.LegacyMustNewDecFromStr(tc.expected)
			if !closeEnough(got, want) {
				t.Errorf("expected %s, got %s", want.String(), got.String())
			}
		})
	}
}

func TestCalcInGivenOut(t *testing.T) {
	got, err := CalcInGivenOut(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(100), math.LegacyNewDec(10),
		math.LegacyNewDec(20),
		math.LegacyZeroDec(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeEnough(got, math.LegacyNewDec(100)) {
		t.Errorf("expected 100, got %s", got.String())
	}
}

func TestCalcInGivenOutDrainsPool(t *testing.T) {
	_, err := CalcInGivenOut(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(100), math.LegacyNewDec(10),
		math.LegacyNewDec(100),
		math.LegacyZeroDec(),
	)
	if err == nil {
		t.Fatal("expected error when requesting the entire out balance")
	}
}

// TestSwapRoundTrip checks that pricing the output of CalcOutGivenIn back
// through CalcInGivenOut recovers the original input.
func TestSwapRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		swapFee string
	}{
		{name: "no fee", swapFee: "0"},
		{name: "with fee", swapFee: "0.003"},
	}

	balanceIn := math.LegacyNewDec(1000)
	weightIn := math.LegacyNewDec(15)
	balanceOut := math.LegacyNewDec(250)
	weightOut := math.LegacyNewDec(25)
	amountIn := math.LegacyNewDec(50)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fee := math.LegacyMustNewDecFromStr(tc.swapFee)
			out, err := CalcOutGivenIn(balanceIn, weightIn, balanceOut, weightOut, amountIn, fee)
			if err != nil {
				t.Fatalf("CalcOutGivenIn: %v", err)
			}
			back, err := CalcInGivenOut(balanceIn, weightIn, balanceOut, weightOut, out, fee)
			if err != nil {
				t.Fatalf("CalcInGivenOut: %v", err)
			}
			if !closeEnough(back, amountIn) {
				t.Errorf("expected round trip to %s, got %s", amountIn.String(), back.String())
			}
		})
	}
}

func TestCalcPoolOutGivenSingleIn(t *testing.T) {
	got, err := CalcPoolOutGivenSingleIn(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(100),
		math.LegacyZeroDec(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.LegacyMustNewDecFromStr("11.474252688112823907")
	if !closeEnough(got, want) {
		t.Errorf("expected %s, got %s", want.String(), got.String())
	}
}

func TestCalcSingleInGivenPoolOut(t *testing.T) {
	poolOut := math.LegacyMustNewDecFromStr("11.474252688112823907")
	got, err := CalcSingleInGivenPoolOut(
		math.LegacyNewDec(400), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		poolOut,
		math.LegacyZeroDec(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeEnough(got, math.LegacyNewDec(100)) {
		t.Errorf("expected 100, got %s", got.String())
	}
}

func TestCalcSingleOutGivenPoolIn(t *testing.T) {
	got, err := CalcSingleOutGivenPoolIn(
		math.LegacyNewDec(100), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyNewDec(10),
		math.LegacyZeroDec(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (190/200)^4 = 0.81450625 exactly, so the payout is exact too
	want := math.LegacyMustNewDecFromStr("18.549375")
	if !closeEnough(got, want) {
		t.Errorf("expected %s, got %s", want.String(), got.String())
	}
}

func TestCalcPoolInGivenSingleOut(t *testing.T) {
	got, err := CalcPoolInGivenSingleOut(
		math.LegacyNewDec(100), math.LegacyNewDec(10),
		math.LegacyNewDec(200), math.LegacyNewDec(40),
		math.LegacyMustNewDecFromStr("18.549375"),
		math.LegacyZeroDec(),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeEnough(got, math.LegacyNewDec(10)) {
		t.Errorf("expected 10, got %s", got.String())
	}
}

// TestSingleSideFeeDirection checks the swap fee always works against the
// trader on single-asset entries and exits.
func TestSingleSideFeeDirection(t *testing.T) {
	balance := math.LegacyNewDec(400)
	weight := math.LegacyNewDec(10)
	supply := math.LegacyNewDec(200)
	totalWeight := math.LegacyNewDec(40)
	amountIn := math.LegacyNewDec(100)
	fee := math.LegacyMustNewDecFromStr("0.01")

	noFee, err := CalcPoolOutGivenSingleIn(balance, weight, supply, totalWeight, amountIn, math.LegacyZeroDec())
	if err != nil {
		t.Fatalf("no fee: %v", err)
	}
	withFee, err := CalcPoolOutGivenSingleIn(balance, weight, supply, totalWeight, amountIn, fee)
	if err != nil {
		t.Fatalf("with fee: %v", err)
	}
	if !withFee.LT(noFee) {
		t.Errorf("expected fee to reduce shares minted: %s >= %s", withFee.String(), noFee.String())
	}

	poolIn := math.LegacyNewDec(10)
	outNoFee, err := CalcSingleOutGivenPoolIn(balance, weight, supply, totalWeight, poolIn, math.LegacyZeroDec())
	if err != nil {
		t.Fatalf("exit no fee: %v", err)
	}
	outWithFee, err := CalcSingleOutGivenPoolIn(balance, weight, supply, totalWeight, poolIn, fee)
	if err != nil {
		t.Fatalf("exit with fee: %v", err)
	}
	if !outWithFee.LT(outNoFee) {
		t.Errorf("expected fee to reduce payout: %s >= %s", outWithFee.String(), outNoFee.String())
	}
}

func TestCalcInvariantRatio(t *testing.T) {
	before := []AssetRecord{
		{Denom: "atom", Balance: math.LegacyNewDec(400), Weight: math.LegacyNewDec(10)},
		{Denom: "osmo", Balance: math.LegacyNewDec(100), Weight: math.LegacyNewDec(10)},
	}

	t.Run("proportional join scales the invariant", func(t *testing.T) {
		after := []AssetRecord{
			{Denom: "atom", Balance: math.LegacyNewDec(480), Weight: math.LegacyNewDec(10)},
			{Denom: "osmo", Balance: math.LegacyNewDec(120), Weight: math.LegacyNewDec(10)},
		}
		ratio, err := CalcInvariantRatio(before, after)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := math.LegacyMustNewDecFromStr("1.2")
		if !closeEnough(ratio, want) {
			t.Errorf("expected %s, got %s", want.String(), ratio.String())
		}
	})

	t.Run("feeless swap preserves the invariant", func(t *testing.T) {
		out, err := CalcOutGivenIn(
			math.LegacyNewDec(400), math.LegacyNewDec(10),
			math.LegacyNewDec(100), math.LegacyNewDec(10),
			math.LegacyNewDec(100), math.LegacyZeroDec(),
		)
		if err != nil {
			t.Fatalf("CalcOutGivenIn: %v", err)
		}
		after := []AssetRecord{
			{Denom: "atom", Balance: math.LegacyNewDec(500), Weight: math.LegacyNewDec(10)},
			{Denom: "osmo", Balance: math.LegacyNewDec(100).Sub(out), Weight: math.LegacyNewDec(10)},
		}
		ratio, err := CalcInvariantRatio(before, after)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !closeEnough(ratio, math.LegacyOneDec()) {
			t.Errorf("expected invariant ratio 1, got %s", ratio.String())
		}
	})

	t.Run("fee grows the invariant", func(t *testing.T) {
		fee := math.LegacyMustNewDecFromStr("0.003")
		out, err := CalcOutGivenIn(
			math.LegacyNewDec(400), math.LegacyNewDec(10),
			math.LegacyNewDec(100), math.LegacyNewDec(10),
			math.LegacyNewDec(100), fee,
		)
		if err != nil {
			t.Fatalf("CalcOutGivenIn: %v", err)
		}
		after := []AssetRecord{
			{Denom: "atom", Balance: math.LegacyNewDec(500), Weight: math.LegacyNewDec(10)},
			{Denom: "osmo", Balance: math.LegacyNewDec(100).Sub(out), Weight: math.LegacyNewDec(10)},
		}
		ratio, err := CalcInvariantRatio(before, after)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ratio.GT(math.LegacyOneDec()) {
			t.Errorf("expected invariant ratio above 1, got %s", ratio.String())
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := CalcInvariantRatio(before, before[:1])
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}
