package loan

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRepaid     Status = "repaid"
	StatusLiquidated Status = "liquidated"
)

var (
	ErrNotFound           = errors.New("loan not found")
	ErrNotActive          = errors.New("loan not active")
	ErrAlreadyFunded      = errors.New("loan already funded")
	ErrNotFunded          = errors.New("loan not funded")
	ErrNotBorrower        = errors.New("caller is not the borrower")
	ErrInvalidPrincipal   = errors.New("principal must be positive")
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrInvalidRate        = errors.New("interest rate exceeds 10000 bps")
	ErrExceedsMaxLoan     = errors.New("principal exceeds max ltv loan amount")
	ErrInvalidAmount      = errors.New("repayment amount must be positive")
	ErrExceedsOutstanding = errors.New("repayment amount exceeds outstanding balance")
	ErrGracePeriodActive  = errors.New("grace period not expired")
	ErrAmountOverflow     = errors.New("repayment total overflows supported amount range")
)

// Loan is the authoritative lifecycle record. Amounts are in the smallest
// unit of the loan's value medium; times are unix seconds. LenderID empty
// means the loan is created but not yet funded — funded-ness is derived, not
// a stored status.
type Loan struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID          string    `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID      string    `gorm:"column:borrower_id;type:char(32);not null;index:idx_loans_borrower" json:"borrower_id"`
	LenderID        string    `gorm:"column:lender_id;type:char(32)" json:"lender_id,omitempty"`
	AssetID         string    `gorm:"column:asset_id;type:char(32);not null;index:idx_loans_asset" json:"asset_id"`
	Principal       int64     `gorm:"column:principal;type:bigint;not null" json:"principal"`
	InterestRateBps int64     `gorm:"column:interest_rate_bps;type:int;not null" json:"interest_rate_bps"`
	DurationSeconds int64     `gorm:"column:duration_seconds;type:bigint;not null" json:"duration_seconds"`
	StartTime       int64     `gorm:"column:start_time;type:bigint;not null;default:0" json:"start_time"`
	TotalRepayment  int64     `gorm:"column:total_repayment;type:bigint;not null" json:"total_repayment"`
	AmountRepaid    int64     `gorm:"column:amount_repaid;type:bigint;not null;default:0" json:"amount_repaid"`
	Status          Status    `gorm:"column:status;type:enum('active','repaid','liquidated');default:'active'" json:"status"`
	ValueMedium     string    `gorm:"column:value_medium;size:16;not null" json:"value_medium"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Funded reports whether a lender has taken the loan.
func (l *Loan) Funded() bool { return l.LenderID != "" }

// Outstanding is the amount still owed.
func (l *Loan) Outstanding() int64 { return l.TotalRepayment - l.AmountRepaid }

// DueTime is the unix second the term ends; zero for unfunded loans.
func (l *Loan) DueTime() int64 {
	if !l.Funded() {
		return 0
	}
	return l.StartTime + l.DurationSeconds
}

// OverdueAt reports whether the loan is past its stated term at now
// (grace period not considered — liquidation eligibility is stricter).
func (l *Loan) OverdueAt(now int64) bool {
	return l.Funded() && l.Status == StatusActive && now > l.DueTime()
}

// LiquidatableAt requires the term plus the grace period to have elapsed
// strictly.
func (l *Loan) LiquidatableAt(now, graceSeconds int64) bool {
	return l.Funded() && l.Status == StatusActive && now > l.DueTime()+graceSeconds
}
