package platform

import (
	"errors"
	"time"
)

const (
	// Platform fee is capped at 10% of principal.
	MaxPlatformFeeBps = 1_000
	settingsRowID     = 1
)

var (
	ErrSettingsNotFound = errors.New("platform settings not initialized")
	ErrNotAdmin         = errors.New("caller is not the platform admin")
	ErrFeeTooHigh       = errors.New("platform fee exceeds 1000 bps cap")
	ErrEmptyRecipient   = errors.New("fee recipient must not be empty")
	ErrNegativeGrace    = errors.New("grace period must not be negative")
	ErrMediumExists     = errors.New("value medium already supported")
	ErrMediumNotFound   = errors.New("value medium not supported")
)

// Settings is the singleton platform configuration read by every funding and
// liquidation operation and mutated only through admin entry points.
type Settings struct {
	ID                 uint64    `gorm:"column:id;primaryKey" json:"-"`
	PlatformFeeBps     int64     `gorm:"column:platform_fee_bps;type:int;not null" json:"platform_fee_bps"`
	FeeRecipientID     string    `gorm:"column:fee_recipient_id;type:char(32);not null" json:"fee_recipient_id"`
	GracePeriodSeconds int64     `gorm:"column:grace_period_seconds;type:bigint;not null" json:"grace_period_seconds"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string { return "platform_settings" }

// DefaultSettings pins the singleton row id so saves always target one row.
func DefaultSettings(feeBps int64, feeRecipient string, graceSeconds int64) *Settings {
	return &Settings{
		ID:                 settingsRowID,
		PlatformFeeBps:     feeBps,
		FeeRecipientID:     feeRecipient,
		GracePeriodSeconds: graceSeconds,
	}
}

// ValueMedium is one row of the allow-list of transfer mediums loans may use.
type ValueMedium struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Symbol    string    `gorm:"column:symbol;size:16;not null;uniqueIndex:ux_value_mediums_symbol" json:"symbol"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ValueMedium) TableName() string { return "value_mediums" }
