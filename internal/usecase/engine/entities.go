package engine

import "time"

// Identities the engine operates under, fixed at startup from config.
type Identities struct {
	// AdminID may mutate platform settings and the medium allow-list.
	AdminID string
	// TreasuryID is the ledger account value passes through when funding
	// (pull lender -> treasury, push treasury -> borrower/fee recipient).
	TreasuryID string
}

type CreateLoanInput struct {
	AssetID         string `json:"asset_id"`
	Principal       int64  `json:"principal"`
	InterestRateBps int64  `json:"interest_rate_bps"`
	DurationSeconds int64  `json:"duration_seconds"`
	ValueMedium     string `json:"value_medium"`
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	BorrowerID      string    `json:"borrower_id"`
	LenderID        string    `json:"lender_id,omitempty"`
	AssetID         string    `json:"asset_id"`
	Principal       int64     `json:"principal"`
	InterestRateBps int64     `json:"interest_rate_bps"`
	DurationSeconds int64     `json:"duration_seconds"`
	StartTime       int64     `json:"start_time"`
	TotalRepayment  int64     `json:"total_repayment"`
	AmountRepaid    int64     `json:"amount_repaid"`
	Outstanding     int64     `json:"outstanding"`
	Status          string    `json:"status"`
	Funded          bool      `json:"funded"`
	ValueMedium     string    `json:"value_medium"`
	CreatedAt       time.Time `json:"created_at"`
}

type SettingsDTO struct {
	PlatformFeeBps     int64    `json:"platform_fee_bps"`
	FeeRecipientID     string   `json:"fee_recipient_id"`
	GracePeriodSeconds int64    `json:"grace_period_seconds"`
	ValueMediums       []string `json:"value_mediums"`
}
