package types

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func TestShareLedgerMintBurn(t *testing.T) {
	l := NewShareLedger()

	if err := l.Mint("alice", math.LegacyNewDec(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Mint("bob", math.LegacyNewDec(50)); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if !l.BalanceOf("alice").Equal(math.LegacyNewDec(100)) {
		t.Errorf("expected alice balance 100, got %s", l.BalanceOf("alice").String())
	}
	if !l.TotalSupply.Equal(math.LegacyNewDec(150)) {
		t.Errorf("expected total supply 150, got %s", l.TotalSupply.String())
	}

	if err := l.Burn("alice", math.LegacyNewDec(40)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if !l.BalanceOf("alice").Equal(math.LegacyNewDec(60)) {
		t.Errorf("expected alice balance 60, got %s", l.BalanceOf("alice").String())
	}
	if !l.TotalSupply.Equal(math.LegacyNewDec(110)) {
		t.Errorf("expected total supply 110, got %s", l.TotalSupply.String())
	}

	if err := l.Burn("alice", math.LegacyNewDec(100)); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
	if err := l.Burn("alice", math.LegacyNewDec(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if err := l.Mint("alice", math.LegacyDec{}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for nil amount, got %v", err)
	}
}

func TestShareLedgerTransfer(t *testing.T) {
	l := NewShareLedger()
	if err := l.Mint("alice", math.LegacyNewDec(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := l.Transfer("alice", "bob", math.LegacyNewDec(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !l.BalanceOf("alice").Equal(math.LegacyNewDec(70)) {
		t.Errorf("expected alice balance 70, got %s", l.BalanceOf("alice").String())
	}
	if !l.BalanceOf("bob").Equal(math.LegacyNewDec(30)) {
		t.Errorf("expected bob balance 30, got %s", l.BalanceOf("bob").String())
	}
	if !l.TotalSupply.Equal(math.LegacyNewDec(100)) {
		t.Errorf("expected total supply unchanged at 100, got %s", l.TotalSupply.String())
	}

	if err := l.Transfer("bob", "alice", math.LegacyNewDec(31)); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}

	// draining a balance drops the entry entirely
	if err := l.Transfer("bob", "alice", math.LegacyNewDec(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !l.BalanceOf("bob").IsZero() {
		t.Errorf("expected bob balance 0, got %s", l.BalanceOf("bob").String())
	}
	if _, ok := l.Balances["bob"]; ok {
		t.Error("expected drained balance entry to be removed")
	}
}

func TestShareLedgerApprove(t *testing.T) {
	l := NewShareLedger()

	if err := l.Approve("alice", "bob", math.LegacyNewDec(25)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !l.Allowance("alice", "bob").Equal(math.LegacyNewDec(25)) {
		t.Errorf("expected allowance 25, got %s", l.Allowance("alice", "bob").String())
	}

	// a fresh approval replaces, it does not accumulate
	if err := l.Approve("alice", "bob", math.LegacyNewDec(10)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !l.Allowance("alice", "bob").Equal(math.LegacyNewDec(10)) {
		t.Errorf("expected allowance 10, got %s", l.Allowance("alice", "bob").String())
	}

	// zero revokes and cleans up
	if err := l.Approve("alice", "bob", math.LegacyZeroDec()); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !l.Allowance("alice", "bob").IsZero() {
		t.Errorf("expected allowance 0, got %s", l.Allowance("alice", "bob").String())
	}
	if _, ok := l.Allowances["alice"]; ok {
		t.Error("expected empty allowance map to be removed")
	}

	if err := l.Approve("alice", "bob", math.LegacyNewDec(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestShareLedgerTransferFrom(t *testing.T) {
	l := NewShareLedger()
	if err := l.Mint("alice", math.LegacyNewDec(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Approve("alice", "bob", math.LegacyNewDec(40)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := l.TransferFrom("bob", "alice", "carol", math.LegacyNewDec(15)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if !l.BalanceOf("carol").Equal(math.LegacyNewDec(15)) {
		t.Errorf("expected carol balance 15, got %s", l.BalanceOf("carol").String())
	}
	if !l.Allowance("alice", "bob").Equal(math.LegacyNewDec(25)) {
		t.Errorf("expected allowance reduced to 25, got %s", l.Allowance("alice", "bob").String())
	}

	if err := l.TransferFrom("bob", "alice", "carol", math.LegacyNewDec(26)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}

	// owners spend their own shares without an allowance
	if err := l.TransferFrom("alice", "alice", "carol", math.LegacyNewDec(50)); err != nil {
		t.Fatalf("self transferFrom: %v", err)
	}
	if !l.BalanceOf("carol").Equal(math.LegacyNewDec(65)) {
		t.Errorf("expected carol balance 65, got %s", l.BalanceOf("carol").String())
	}

	// consuming the full allowance removes the entry
	if err := l.TransferFrom("bob", "alice", "carol", math.LegacyNewDec(25)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if _, ok := l.Allowances["alice"]; ok {
		t.Error("expected spent allowance entry to be removed")
	}
}
