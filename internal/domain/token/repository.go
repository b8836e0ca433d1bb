package token

import "context"

// Ledger is the persistence surface backing the gorm stablecoin mediums.
// Deposit and Approve are the out-of-band operations callers use to get funds
// and authorize the treasury before a loan operation pulls from them.
type Ledger interface {
	Mediums

	BalanceOf(ctx context.Context, medium, accountID string) (int64, error)
	AllowanceOf(ctx context.Context, medium, ownerID, spenderID string) (int64, error)
	Deposit(ctx context.Context, medium, accountID string, amount int64) error
	Approve(ctx context.Context, medium, ownerID, spenderID string, amount int64) error
}
