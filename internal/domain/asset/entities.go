package asset

import (
	"errors"
	"math/big"
	"time"
)

var (
	ErrNotFound         = errors.New("asset not found")
	ErrAlreadyLocked    = errors.New("asset already locked")
	ErrNotLocked        = errors.New("asset not locked")
	ErrNotOwner         = errors.New("caller is not the asset owner")
	ErrNotEngine        = errors.New("caller is not the authorized lock engine")
	ErrInvalidLtv       = errors.New("max ltv must be between 0 and 10000 bps")
	ErrInvalidValuation = errors.New("valuation must be positive")
)

const maxLtvCapBps = 10_000

// Asset is a tokenized real-world collateral record. Valuation is in
// fixed-point smallest units of the reference currency; the lock flag is the
// sole mutual-exclusion primitive keeping one asset out of two loans.
type Asset struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AssetID   string `gorm:"column:asset_id;type:char(32);not null;uniqueIndex:ux_assets_asset_id" json:"asset_id"`
	OwnerID   string `gorm:"column:owner_id;type:char(32);not null;index:idx_assets_owner" json:"owner_id"`
	AssetType string `gorm:"column:asset_type;size:64" json:"asset_type"`
	// Set at mint time by the off-chain valuation pipeline; never revalued here.
	Valuation int64     `gorm:"column:valuation;type:bigint;not null" json:"valuation"`
	MaxLtvBps int64     `gorm:"column:max_ltv_bps;type:int;not null" json:"max_ltv_bps"`
	IsLocked  bool      `gorm:"column:is_locked;not null;default:false" json:"is_locked"`
	LoanID    string    `gorm:"column:loan_id;type:char(32)" json:"loan_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Asset) TableName() string { return "assets" }

// MaxLoanAmount is valuation * maxLtvBps / 10000 with integer truncation.
func (a *Asset) MaxLoanAmount() int64 {
	amt := new(big.Int).Mul(big.NewInt(a.Valuation), big.NewInt(a.MaxLtvBps))
	amt.Quo(amt, big.NewInt(maxLtvCapBps))
	return amt.Int64()
}

// LockFor reserves the asset for loanID. At most one active loan may hold the
// lock at any time.
func (a *Asset) LockFor(loanID string) error {
	if a.IsLocked {
		return ErrAlreadyLocked
	}
	a.IsLocked = true
	a.LoanID = loanID
	return nil
}

// Unlock releases the lock and clears the loan back-reference. Safe to call
// only from lifecycle states where the lock is held.
func (a *Asset) Unlock() {
	a.IsLocked = false
	a.LoanID = ""
}

// TransferTo moves ownership from -> to. Fails unless from currently owns the
// asset; used only at liquidation and mint-time assignment.
func (a *Asset) TransferTo(from, to string) error {
	if a.OwnerID != from {
		return ErrNotOwner
	}
	a.OwnerID = to
	return nil
}
