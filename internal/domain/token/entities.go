package token

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnsupportedMedium     = errors.New("value medium not supported")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient spending allowance")
	ErrInvalidAmount         = errors.New("transfer amount must be positive")
	ErrAccountNotFound       = errors.New("ledger account not found")
)

// Medium moves value between platform identities. Implementations are bound
// to one medium symbol and, inside a unit of work, to the surrounding
// transaction — both legs of a pull-then-push either commit together or roll
// back together.
type Medium interface {
	// TransferFrom pulls amount from owner to recipient, consuming owner's
	// allowance for the treasury spender.
	TransferFrom(ctx context.Context, owner, recipient string, amount int64) error
	// Transfer pushes amount from the treasury account to recipient.
	Transfer(ctx context.Context, recipient string, amount int64) error
}

// Mediums resolves an allow-listed symbol to a transfer medium.
type Mediums interface {
	Resolve(symbol string) (Medium, error)
}

// Account is one balance row of the stablecoin ledger, keyed by medium symbol
// and holder identity. Balance is in the medium's smallest unit.
type Account struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Medium    string    `gorm:"column:medium;size:16;not null;uniqueIndex:ux_ledger_medium_account,priority:1" json:"medium"`
	AccountID string    `gorm:"column:account_id;type:char(32);not null;uniqueIndex:ux_ledger_medium_account,priority:2" json:"account_id"`
	Balance   int64     `gorm:"column:balance;type:bigint;not null;default:0" json:"balance"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Account) TableName() string { return "ledger_accounts" }

// Allowance authorizes the spender to pull up to Amount from the owner's
// account, mirroring the approve/transferFrom split of token standards.
type Allowance struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Medium    string    `gorm:"column:medium;size:16;not null;uniqueIndex:ux_allowance_key,priority:1" json:"medium"`
	OwnerID   string    `gorm:"column:owner_id;type:char(32);not null;uniqueIndex:ux_allowance_key,priority:2" json:"owner_id"`
	SpenderID string    `gorm:"column:spender_id;type:char(32);not null;uniqueIndex:ux_allowance_key,priority:3" json:"spender_id"`
	Amount    int64     `gorm:"column:amount;type:bigint;not null;default:0" json:"amount"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Allowance) TableName() string { return "ledger_allowances" }
