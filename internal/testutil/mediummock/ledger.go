package mediummock

import (
	"context"

	"rwalend/internal/domain/token"
)

// Ledger is an in-memory token.Ledger for engine tests: real balance and
// allowance arithmetic, no persistence. TransferFromErr/TransferErr inject
// failures to exercise the abort path.
type Ledger struct {
	TreasuryID string

	balances   map[string]map[string]int64 // medium -> account -> balance
	allowances map[string]map[string]int64 // medium -> owner -> allowance for treasury

	TransferFromErr error
	TransferErr     error
}

func NewLedger(treasuryID string) *Ledger {
	return &Ledger{
		TreasuryID: treasuryID,
		balances:   map[string]map[string]int64{},
		allowances: map[string]map[string]int64{},
	}
}

func (f *Ledger) Resolve(symbol string) (token.Medium, error) {
	if symbol == "" {
		return nil, token.ErrUnsupportedMedium
	}
	return &fakeMedium{ledger: f, symbol: symbol}, nil
}

func (f *Ledger) BalanceOf(_ context.Context, medium, accountID string) (int64, error) {
	return f.balances[medium][accountID], nil
}

func (f *Ledger) AllowanceOf(_ context.Context, medium, ownerID, spenderID string) (int64, error) {
	if spenderID != f.TreasuryID {
		return 0, nil
	}
	return f.allowances[medium][ownerID], nil
}

func (f *Ledger) Deposit(_ context.Context, medium, accountID string, amount int64) error {
	if amount <= 0 {
		return token.ErrInvalidAmount
	}
	f.credit(medium, accountID, amount)
	return nil
}

func (f *Ledger) Approve(_ context.Context, medium, ownerID, spenderID string, amount int64) error {
	if amount < 0 {
		return token.ErrInvalidAmount
	}
	if f.allowances[medium] == nil {
		f.allowances[medium] = map[string]int64{}
	}
	f.allowances[medium][ownerID] = amount
	return nil
}

func (f *Ledger) credit(medium, accountID string, amount int64) {
	if f.balances[medium] == nil {
		f.balances[medium] = map[string]int64{}
	}
	f.balances[medium][accountID] += amount
}

type fakeMedium struct {
	ledger *Ledger
	symbol string
}

func (m *fakeMedium) TransferFrom(_ context.Context, owner, recipient string, amount int64) error {
	f := m.ledger
	if f.TransferFromErr != nil {
		return f.TransferFromErr
	}
	if amount <= 0 {
		return token.ErrInvalidAmount
	}
	if f.allowances[m.symbol][owner] < amount {
		return token.ErrInsufficientAllowance
	}
	if f.balances[m.symbol][owner] < amount {
		return token.ErrInsufficientBalance
	}
	f.allowances[m.symbol][owner] -= amount
	f.balances[m.symbol][owner] -= amount
	f.credit(m.symbol, recipient, amount)
	return nil
}

func (m *fakeMedium) Transfer(_ context.Context, recipient string, amount int64) error {
	f := m.ledger
	if f.TransferErr != nil {
		return f.TransferErr
	}
	if amount <= 0 {
		return token.ErrInvalidAmount
	}
	if f.balances[m.symbol][f.TreasuryID] < amount {
		return token.ErrInsufficientBalance
	}
	f.balances[m.symbol][f.TreasuryID] -= amount
	f.credit(m.symbol, recipient, amount)
	return nil
}
