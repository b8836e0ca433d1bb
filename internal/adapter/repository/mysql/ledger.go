package mysql

import (
	"context"
	"errors"

	"rwalend/internal/domain/token"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository is the gorm-backed stablecoin ledger. One table of
// balances and one of allowances per medium symbol; pulls consume the
// owner's allowance for the platform treasury, pushes spend the treasury
// balance. Multi-statement moves are only atomic when the repo is bound to a
// transaction, which is how the unit of work hands it to the engine.
type LedgerRepository struct {
	db         *gorm.DB
	treasuryID string
}

func NewLedgerRepository(db *gorm.DB, treasuryID string) *LedgerRepository {
	return &LedgerRepository{db: db, treasuryID: treasuryID}
}

// Resolve binds a medium symbol. Unknown symbols surface when the first
// debit finds no funded account; an empty symbol is rejected outright.
func (r *LedgerRepository) Resolve(symbol string) (token.Medium, error) {
	if symbol == "" {
		return nil, token.ErrUnsupportedMedium
	}
	return &gormMedium{ledger: r, symbol: symbol}, nil
}

func (r *LedgerRepository) BalanceOf(ctx context.Context, medium, accountID string) (int64, error) {
	var out token.Account
	res := r.db.WithContext(ctx).
		Where("medium = ? AND account_id = ?", medium, accountID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return out.Balance, res.Error
}

func (r *LedgerRepository) AllowanceOf(ctx context.Context, medium, ownerID, spenderID string) (int64, error) {
	var out token.Allowance
	res := r.db.WithContext(ctx).
		Where("medium = ? AND owner_id = ? AND spender_id = ?", medium, ownerID, spenderID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return out.Amount, res.Error
}

// Deposit credits an account from outside the platform (on-ramp/faucet).
func (r *LedgerRepository) Deposit(ctx context.Context, medium, accountID string, amount int64) error {
	if amount <= 0 {
		return token.ErrInvalidAmount
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return credit(ctx, tx, medium, accountID, amount)
	})
}

// Approve sets (not adds) the owner's allowance for spender.
func (r *LedgerRepository) Approve(ctx context.Context, medium, ownerID, spenderID string, amount int64) error {
	if amount < 0 {
		return token.ErrInvalidAmount
	}
	row := &token.Allowance{Medium: medium, OwnerID: ownerID, SpenderID: spenderID, Amount: amount}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "medium"}, {Name: "owner_id"}, {Name: "spender_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).
		Create(row).Error
}

// gormMedium is one symbol's view of the ledger.
type gormMedium struct {
	ledger *LedgerRepository
	symbol string
}

func (m *gormMedium) TransferFrom(ctx context.Context, owner, recipient string, amount int64) error {
	if amount <= 0 {
		return token.ErrInvalidAmount
	}
	db := m.ledger.db.WithContext(ctx)
	if err := consumeAllowance(ctx, db, m.symbol, owner, m.ledger.treasuryID, amount); err != nil {
		return err
	}
	if err := debit(ctx, db, m.symbol, owner, amount); err != nil {
		return err
	}
	return credit(ctx, db, m.symbol, recipient, amount)
}

func (m *gormMedium) Transfer(ctx context.Context, recipient string, amount int64) error {
	if amount <= 0 {
		return token.ErrInvalidAmount
	}
	db := m.ledger.db.WithContext(ctx)
	if err := debit(ctx, db, m.symbol, m.ledger.treasuryID, amount); err != nil {
		return err
	}
	return credit(ctx, db, m.symbol, recipient, amount)
}

func debit(ctx context.Context, db *gorm.DB, medium, accountID string, amount int64) error {
	var acc token.Account
	res := forUpdate(db.WithContext(ctx)).
		Where("medium = ? AND account_id = ?", medium, accountID).
		First(&acc)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return token.ErrInsufficientBalance
	}
	if res.Error != nil {
		return res.Error
	}
	if acc.Balance < amount {
		return token.ErrInsufficientBalance
	}
	acc.Balance -= amount
	return db.WithContext(ctx).Save(&acc).Error
}

func credit(ctx context.Context, db *gorm.DB, medium, accountID string, amount int64) error {
	var acc token.Account
	res := forUpdate(db.WithContext(ctx)).
		Where("medium = ? AND account_id = ?", medium, accountID).
		First(&acc)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return db.WithContext(ctx).
			Create(&token.Account{Medium: medium, AccountID: accountID, Balance: amount}).Error
	}
	if res.Error != nil {
		return res.Error
	}
	acc.Balance += amount
	return db.WithContext(ctx).Save(&acc).Error
}

func consumeAllowance(ctx context.Context, db *gorm.DB, medium, ownerID, spenderID string, amount int64) error {
	var al token.Allowance
	res := forUpdate(db.WithContext(ctx)).
		Where("medium = ? AND owner_id = ? AND spender_id = ?", medium, ownerID, spenderID).
		First(&al)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return token.ErrInsufficientAllowance
	}
	if res.Error != nil {
		return res.Error
	}
	if al.Amount < amount {
		return token.ErrInsufficientAllowance
	}
	al.Amount -= amount
	return db.WithContext(ctx).Save(&al).Error
}
