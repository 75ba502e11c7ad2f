package types

import (
	"encoding/json"
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func newTestSmartPool() *SmartPool {
	return NewSmartPool(
		"spool-1", "controller", AllRights(),
		[]string{"atom", "osmo"},
		[]math.LegacyDec{math.LegacyNewDec(400), math.LegacyNewDec(100)},
		[]math.LegacyDec{math.LegacyNewDec(10), math.LegacyNewDec(10)},
		math.LegacyMustNewDecFromStr("0.003"),
		10, 5, 1700000000,
	)
}

func TestNewSmartPoolDefaults(t *testing.T) {
	sp := newTestSmartPool()

	if sp.SmartPoolID != "spool-1" {
		t.Errorf("expected smart pool ID spool-1, got %s", sp.SmartPoolID)
	}
	if sp.PoolCreated() {
		t.Error("expected no engine pool before instantiation")
	}
	if !sp.Cap.Equal(UnlimitedCap) {
		t.Errorf("expected an unlimited cap, got %s", sp.Cap.String())
	}
	if sp.HasGradualUpdate() {
		t.Error("expected no gradual update")
	}
	if sp.HasTokenCommit() {
		t.Error("expected no token commit")
	}
	if sp.Whitelist == nil {
		t.Error("expected an initialized whitelist")
	}
	if sp.MinimumWeightChangeBlockPeriod != 10 || sp.AddTokenTimeLockInBlocks != 5 {
		t.Errorf("expected periods 10/5, got %d/%d",
			sp.MinimumWeightChangeBlockPeriod, sp.AddTokenTimeLockInBlocks)
	}
	if sp.CreatedAt != 1700000000 || sp.UpdatedAt != 1700000000 {
		t.Errorf("expected timestamps 1700000000, got %d/%d", sp.CreatedAt, sp.UpdatedAt)
	}
}

func TestGradualUpdateLifecycle(t *testing.T) {
	sp := newTestSmartPool()

	sp.GradualUpdate = GradualUpdate{
		StartBlock:    10,
		EndBlock:      20,
		Denoms:        []string{"atom", "osmo"},
		StartWeights:  []math.LegacyDec{math.LegacyNewDec(10), math.LegacyNewDec(10)},
		TargetWeights: []math.LegacyDec{math.LegacyNewDec(20), math.LegacyNewDec(10)},
	}
	if !sp.HasGradualUpdate() {
		t.Error("expected the update reported in flight")
	}

	sp.ClearGradualUpdate()
	if sp.HasGradualUpdate() {
		t.Error("expected the update cleared")
	}
	if sp.GradualUpdate.EndBlock != 0 || sp.GradualUpdate.Denoms != nil {
		t.Error("expected the cleared update empty")
	}
}

func TestTokenCommitLifecycle(t *testing.T) {
	sp := newTestSmartPool()

	sp.NewToken = NewTokenCommit{
		Denom:       "scrt",
		Balance:     math.LegacyNewDec(100),
		Weight:      math.LegacyNewDec(5),
		CommitBlock: 7,
		Committed:   true,
	}
	if !sp.HasTokenCommit() {
		t.Error("expected the commit reported pending")
	}

	sp.ClearTokenCommit()
	if sp.HasTokenCommit() {
		t.Error("expected the commit cleared")
	}
}

// TestWhitelistSurvivesRoundTrip checks that an empty whitelist is dropped by
// the store encoding and comes back as a nil map the reads still tolerate.
func TestWhitelistSurvivesRoundTrip(t *testing.T) {
	sp := newTestSmartPool()

	bz, err := json.Marshal(sp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored SmartPool
	if err := json.Unmarshal(bz, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Whitelist != nil {
		t.Error("expected the empty whitelist dropped by the encoding")
	}
	if restored.IsWhitelisted("anyone") {
		t.Error("expected no one whitelisted on the nil map")
	}

	sp.Whitelist["lp"] = true
	bz, _ = json.Marshal(sp)
	if err := json.Unmarshal(bz, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !restored.IsWhitelisted("lp") {
		t.Error("expected the listed provider to survive the round trip")
	}
}

func TestValidateInitialSupply(t *testing.T) {
	testCases := []struct {
		name   string
		supply string
		err    error
	}{
		{name: "below minimum", supply: "99", err: ErrInitSupplyOutOfRange},
		{name: "at minimum", supply: "100", err: nil},
		{name: "typical", supply: "1000", err: nil},
		{name: "at maximum", supply: "1000000000", err: nil},
		{name: "above maximum", supply: "1000000001", err: ErrInitSupplyOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInitialSupply(math.LegacyMustNewDecFromStr(tc.supply))
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestRightsSets(t *testing.T) {
	none := NoRights()
	if none.CanPauseSwapping || none.CanChangeSwapFee || none.CanChangeWeights ||
		none.CanAddRemoveTokens || none.CanWhitelistLPs || none.CanChangeCap {
		t.Error("expected every capability off")
	}

	all := AllRights()
	if !all.CanPauseSwapping || !all.CanChangeSwapFee || !all.CanChangeWeights ||
		!all.CanAddRemoveTokens || !all.CanWhitelistLPs || !all.CanChangeCap {
		t.Error("expected every capability on")
	}
}
