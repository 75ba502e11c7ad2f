package types

import (
	"cosmossdk.io/math"
)

// ShareLedger is the fungible-share accounting of a single pool: total
// supply, per-holder balances, and spender allowances. It is persisted as
// part of the pool record so a share movement and the pool mutation that
// caused it commit together.
type ShareLedger struct {
	TotalSupply math.LegacyDec                       `json:"total_supply"`
	Balances    map[string]math.LegacyDec            `json:"balances,omitempty"`
	Allowances  map[string]map[string]math.LegacyDec `json:"allowances,omitempty"`
}

// NewShareLedger creates an empty ledger.
func NewShareLedger() ShareLedger {
	return ShareLedger{
		TotalSupply: math.LegacyZeroDec(),
		Balances:    map[string]math.LegacyDec{},
		Allowances:  map[string]map[string]math.LegacyDec{},
	}
}

// BalanceOf returns the share balance of an address.
func (l *ShareLedger) BalanceOf(addr string) math.LegacyDec {
	if bal, ok := l.Balances[addr]; ok {
		return bal
	}
	return math.LegacyZeroDec()
}

// Allowance returns what spender may move out of owner's balance.
func (l *ShareLedger) Allowance(owner, spender string) math.LegacyDec {
	if m, ok := l.Allowances[owner]; ok {
		if amt, ok := m[spender]; ok {
			return amt
		}
	}
	return math.LegacyZeroDec()
}

// Mint credits newly created shares to an address.
func (l *ShareLedger) Mint(to string, amount math.LegacyDec) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	if l.Balances == nil {
		l.Balances = map[string]math.LegacyDec{}
	}
	l.Balances[to] = l.BalanceOf(to).Add(amount)
	l.TotalSupply = l.TotalSupply.Add(amount)
	return nil
}

// Burn destroys shares held by an address.
func (l *ShareLedger) Burn(from string, amount math.LegacyDec) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	bal := l.BalanceOf(from)
	if bal.LT(amount) {
		return ErrInsufficientShares
	}
	l.setBalance(from, bal.Sub(amount))
	l.TotalSupply = l.TotalSupply.Sub(amount)
	return nil
}

// Transfer moves shares between addresses.
func (l *ShareLedger) Transfer(from, to string, amount math.LegacyDec) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	bal := l.BalanceOf(from)
	if bal.LT(amount) {
		return ErrInsufficientShares
	}
	l.setBalance(from, bal.Sub(amount))
	l.setBalance(to, l.BalanceOf(to).Add(amount))
	return nil
}

// Approve lets spender move up to amount out of owner's balance. A fresh
// approval replaces any previous one.
func (l *ShareLedger) Approve(owner, spender string, amount math.LegacyDec) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	if l.Allowances == nil {
		l.Allowances = map[string]map[string]math.LegacyDec{}
	}
	m, ok := l.Allowances[owner]
	if !ok {
		m = map[string]math.LegacyDec{}
		l.Allowances[owner] = m
	}
	if amount.IsZero() {
		delete(m, spender)
		if len(m) == 0 {
			delete(l.Allowances, owner)
		}
		return nil
	}
	m[spender] = amount
	return nil
}

// TransferFrom moves shares out of from's balance on spender's allowance.
// The owner moving their own shares needs no allowance.
func (l *ShareLedger) TransferFrom(spender, from, to string, amount math.LegacyDec) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	if spender != from {
		allowed := l.Allowance(from, spender)
		if allowed.LT(amount) {
			return ErrInsufficientAllowance
		}
		if err := l.Approve(from, spender, allowed.Sub(amount)); err != nil {
			return err
		}
	}
	return l.Transfer(from, to, amount)
}

// setBalance writes a balance, dropping zero entries so the persisted record
// stays compact.
func (l *ShareLedger) setBalance(addr string, amount math.LegacyDec) {
	if l.Balances == nil {
		l.Balances = map[string]math.LegacyDec{}
	}
	if amount.IsZero() {
		delete(l.Balances, addr)
		return
	}
	l.Balances[addr] = amount
}
