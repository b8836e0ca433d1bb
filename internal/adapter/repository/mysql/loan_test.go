package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "rwalend/internal/domain/loan"
	"rwalend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	LoanID          string    `gorm:"size:32;column:loan_id;uniqueIndex"`
	BorrowerID      string    `gorm:"size:32;column:borrower_id"`
	LenderID        string    `gorm:"size:32;column:lender_id"`
	AssetID         string    `gorm:"size:32;column:asset_id"`
	Principal       int64     `gorm:"column:principal"`
	InterestRateBps int64     `gorm:"column:interest_rate_bps"`
	DurationSeconds int64     `gorm:"column:duration_seconds"`
	StartTime       int64     `gorm:"column:start_time"`
	TotalRepayment  int64     `gorm:"column:total_repayment"`
	AmountRepaid    int64     `gorm:"column:amount_repaid"`
	State           string    `gorm:"type:text;column:status"` // ← no enum
	ValueMedium     string    `gorm:"size:16;column:value_medium"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

// openTestDB creates an in-memory sqlite DB and migrates the sqlite-safe
// schema: the loan shadow model plus the domain models that are already
// sqlite-clean.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe loan model, NOT the domain model.
	if err := db.AutoMigrate(&loanSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, borrowerID string) *domain.Loan {
	return &domain.Loan{
		LoanID:          loanID,
		BorrowerID:      borrowerID,
		AssetID:         id.NewID32(),
		Principal:       700,
		InterestRateBps: 1_000,
		DurationSeconds: 30 * 24 * 3600,
		TotalRepayment:  705,
		Status:          domain.StatusActive,
		ValueMedium:     "USDC",
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	borrower := id.NewID32()

	l := makeLoan(loanID, borrower)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.BorrowerID != borrower {
		t.Errorf("unexpected loan: %+v", got)
	}
	if got.Funded() {
		t.Errorf("fresh loan must not be funded")
	}
	if got.TotalRepayment != 705 {
		t.Errorf("TotalRepayment = %d, want 705", got.TotalRepayment)
	}
}

func TestLoanSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, "dddddddddddddddddddddddddddddddd")

	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Fund the loan and persist
	lender := "cccccccccccccccccccccccccccccccc"
	l.LenderID = lender
	l.StartTime = time.Now().Unix()
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LenderID != lender || !got.Funded() {
		t.Errorf("lender not persisted, got=%+v", got)
	}
	if got.StartTime == 0 {
		t.Errorf("StartTime not persisted")
	}
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoanGetByLoanIDForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	if err := repo.Create(ctx, makeLoan(loanID, id.NewID32())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanIDForUpdate: %v", err)
	}
	if got.LoanID != loanID {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanListByBorrowerID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	b1 := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	first := id.NewID32()
	second := id.NewID32()

	if err := repo.Create(ctx, makeLoan(first, b1)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, makeLoan(second, b1)); err != nil {
		t.Fatal(err)
	}
	// another borrower, must not appear
	if err := repo.Create(ctx, makeLoan(id.NewID32(), id.NewID32())); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListByBorrowerID(ctx, b1)
	if err != nil {
		t.Fatalf("ListByBorrowerID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 loans, got %d", len(got))
	}
	// insertion order via id ASC
	if got[0].LoanID != first || got[1].LoanID != second {
		t.Errorf("unexpected order: %s, %s", got[0].LoanID, got[1].LoanID)
	}

	empty, err := repo.ListByBorrowerID(ctx, "99999999999999999999999999999999")
	if err != nil {
		t.Fatalf("ListByBorrowerID empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no loans, got %d", len(empty))
	}
}
