package types

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func TestNewPoolDefaults(t *testing.T) {
	pool := NewPool("pool-1", "controller", 1700000000)

	if pool.PoolID != "pool-1" {
		t.Errorf("expected pool ID pool-1, got %s", pool.PoolID)
	}
	if pool.Controller != "controller" {
		t.Errorf("expected controller, got %s", pool.Controller)
	}
	if !pool.SwapFee.Equal(MinSwapFee) {
		t.Errorf("expected default swap fee %s, got %s", MinSwapFee.String(), pool.SwapFee.String())
	}
	if pool.Finalized {
		t.Error("expected new pool to be unfinalized")
	}
	if pool.PublicSwap {
		t.Error("expected new pool to have public swap disabled")
	}
	if pool.NumTokens() != 0 {
		t.Errorf("expected 0 bound tokens, got %d", pool.NumTokens())
	}
	if !pool.Shares.TotalSupply.IsZero() {
		t.Errorf("expected zero share supply, got %s", pool.Shares.TotalSupply.String())
	}
	if pool.CreatedAt != 1700000000 || pool.UpdatedAt != 1700000000 {
		t.Errorf("expected timestamps 1700000000, got %d/%d", pool.CreatedAt, pool.UpdatedAt)
	}
}

func TestPoolRecords(t *testing.T) {
	pool := NewPool("pool-1", "controller", 0)

	pool.AddRecord("atom", math.LegacyNewDec(400), math.LegacyNewDec(10))
	pool.AddRecord("osmo", math.LegacyNewDec(100), math.LegacyNewDec(10))
	pool.AddRecord("juno", math.LegacyNewDec(50), math.LegacyNewDec(20))

	if pool.NumTokens() != 3 {
		t.Fatalf("expected 3 bound tokens, got %d", pool.NumTokens())
	}
	if !pool.IsBound("osmo") {
		t.Error("expected osmo to be bound")
	}
	if pool.IsBound("scrt") {
		t.Error("expected scrt to be unbound")
	}
	if !pool.TotalWeight().Equal(math.LegacyNewDec(40)) {
		t.Errorf("expected total weight 40, got %s", pool.TotalWeight().String())
	}

	rec, ok := pool.GetRecord("atom")
	if !ok {
		t.Fatal("expected atom record")
	}
	if !rec.Balance.Equal(math.LegacyNewDec(400)) {
		t.Errorf("expected balance 400, got %s", rec.Balance.String())
	}

	if !pool.SetRecord("atom", math.LegacyNewDec(500), math.LegacyNewDec(10)) {
		t.Fatal("expected SetRecord to succeed on bound denom")
	}
	rec, _ = pool.GetRecord("atom")
	if !rec.Balance.Equal(math.LegacyNewDec(500)) {
		t.Errorf("expected updated balance 500, got %s", rec.Balance.String())
	}
	if pool.SetRecord("scrt", math.LegacyNewDec(1), math.LegacyNewDec(1)) {
		t.Error("expected SetRecord to fail on unbound denom")
	}

	// removal moves the last record into the vacated slot
	if !pool.RemoveRecord("atom") {
		t.Fatal("expected RemoveRecord to succeed")
	}
	denoms := pool.Denoms()
	if len(denoms) != 2 || denoms[0] != "juno" || denoms[1] != "osmo" {
		t.Errorf("expected denoms [juno osmo], got %v", denoms)
	}
	if pool.RemoveRecord("atom") {
		t.Error("expected second removal to fail")
	}
}

func TestValidateWeight(t *testing.T) {
	testCases := []struct {
		name   string
		weight string
		err    error
	}{
		{name: "below minimum", weight: "0.5", err: ErrWeightBelowMin},
		{name: "at minimum", weight: "1", err: nil},
		{name: "at maximum", weight: "50", err: nil},
		{name: "above maximum", weight: "50.000000000000000001", err: ErrWeightAboveMax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWeight(math.LegacyMustNewDecFromStr(tc.weight))
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestValidateBalance(t *testing.T) {
	if err := ValidateBalance(math.LegacyNewDecWithPrec(1, 13)); !errors.Is(err, ErrBalanceBelowMin) {
		t.Errorf("expected ErrBalanceBelowMin, got %v", err)
	}
	if err := ValidateBalance(MinBalance); err != nil {
		t.Errorf("expected dust floor to be valid, got %v", err)
	}
}

func TestValidateSwapFee(t *testing.T) {
	testCases := []struct {
		name string
		fee  string
		err  error
	}{
		{name: "below minimum", fee: "0.0000001", err: ErrSwapFeeOutOfRange},
		{name: "at minimum", fee: "0.000001", err: nil},
		{name: "typical", fee: "0.003", err: nil},
		{name: "at maximum", fee: "0.1", err: nil},
		{name: "above maximum", fee: "0.2", err: ErrSwapFeeOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSwapFee(math.LegacyMustNewDecFromStr(tc.fee))
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestMaxOutRatioAdmitsOneThird(t *testing.T) {
	balance := math.LegacyNewDec(300)
	limit := balance.Mul(MaxOutRatio)
	if limit.LT(math.LegacyNewDec(100)) {
		t.Errorf("expected a one-third withdrawal to pass the ratio gate, limit %s", limit.String())
	}
}
