package mysql

import (
	"context"
	"errors"
	"testing"

	"rwalend/internal/domain/token"
	"rwalend/pkg/id"

	"gorm.io/gorm"
)

func openLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(&token.Account{}, &token.Allowance{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestDepositAndBalanceOf(t *testing.T) {
	db := openLedgerTestDB(t)
	treasury := id.NewID32()
	repo := NewLedgerRepository(db, treasury)
	ctx := context.Background()

	alice := id.NewID32()

	// balance of an unknown account reads as zero
	bal, err := repo.BalanceOf(ctx, "USDC", alice)
	if err != nil || bal != 0 {
		t.Fatalf("BalanceOf fresh account = %d, %v", bal, err)
	}

	if err := repo.Deposit(ctx, "USDC", alice, 500); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if err := repo.Deposit(ctx, "USDC", alice, 200); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	bal, err = repo.BalanceOf(ctx, "USDC", alice)
	if err != nil || bal != 700 {
		t.Fatalf("BalanceOf = %d, %v; want 700", bal, err)
	}

	// balances are scoped per medium
	bal, err = repo.BalanceOf(ctx, "EURC", alice)
	if err != nil || bal != 0 {
		t.Fatalf("BalanceOf other medium = %d, %v", bal, err)
	}

	if err := repo.Deposit(ctx, "USDC", alice, 0); !errors.Is(err, token.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestApproveSetsNotAdds(t *testing.T) {
	db := openLedgerTestDB(t)
	treasury := id.NewID32()
	repo := NewLedgerRepository(db, treasury)
	ctx := context.Background()

	alice := id.NewID32()

	if err := repo.Approve(ctx, "USDC", alice, treasury, 500); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := repo.Approve(ctx, "USDC", alice, treasury, 300); err != nil {
		t.Fatalf("Approve again: %v", err)
	}

	al, err := repo.AllowanceOf(ctx, "USDC", alice, treasury)
	if err != nil || al != 300 {
		t.Fatalf("AllowanceOf = %d, %v; want 300 (set semantics)", al, err)
	}

	if err := repo.Approve(ctx, "USDC", alice, treasury, -1); !errors.Is(err, token.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTransferFrom_MovesValueAndConsumesAllowance(t *testing.T) {
	db := openLedgerTestDB(t)
	treasury := id.NewID32()
	repo := NewLedgerRepository(db, treasury)
	ctx := context.Background()

	lender := id.NewID32()
	if err := repo.Deposit(ctx, "USDC", lender, 700); err != nil {
		t.Fatal(err)
	}
	if err := repo.Approve(ctx, "USDC", lender, treasury, 700); err != nil {
		t.Fatal(err)
	}

	med, err := repo.Resolve("USDC")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := med.TransferFrom(ctx, lender, treasury, 700); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}

	lb, _ := repo.BalanceOf(ctx, "USDC", lender)
	tb, _ := repo.BalanceOf(ctx, "USDC", treasury)
	al, _ := repo.AllowanceOf(ctx, "USDC", lender, treasury)
	if lb != 0 || tb != 700 || al != 0 {
		t.Errorf("post-transfer state lender=%d treasury=%d allowance=%d", lb, tb, al)
	}
}

func TestTransferFrom_Insufficient(t *testing.T) {
	db := openLedgerTestDB(t)
	treasury := id.NewID32()
	repo := NewLedgerRepository(db, treasury)
	ctx := context.Background()

	lender := id.NewID32()
	med, err := repo.Resolve("USDC")
	if err != nil {
		t.Fatal(err)
	}

	// no allowance at all
	if err := med.TransferFrom(ctx, lender, treasury, 100); !errors.Is(err, token.ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}

	// allowance present, balance short
	if err := repo.Approve(ctx, "USDC", lender, treasury, 100); err != nil {
		t.Fatal(err)
	}
	if err := med.TransferFrom(ctx, lender, treasury, 100); !errors.Is(err, token.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	// allowance below the requested amount
	if err := repo.Deposit(ctx, "USDC", lender, 1_000); err != nil {
		t.Fatal(err)
	}
	if err := med.TransferFrom(ctx, lender, treasury, 101); !errors.Is(err, token.ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}
}

func TestTransfer_SpendsTreasury(t *testing.T) {
	db := openLedgerTestDB(t)
	treasury := id.NewID32()
	repo := NewLedgerRepository(db, treasury)
	ctx := context.Background()

	borrower := id.NewID32()
	med, err := repo.Resolve("USDC")
	if err != nil {
		t.Fatal(err)
	}

	// empty treasury cannot push
	if err := med.Transfer(ctx, borrower, 100); !errors.Is(err, token.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if err := repo.Deposit(ctx, "USDC", treasury, 700); err != nil {
		t.Fatal(err)
	}
	if err := med.Transfer(ctx, borrower, 693); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	tb, _ := repo.BalanceOf(ctx, "USDC", treasury)
	bb, _ := repo.BalanceOf(ctx, "USDC", borrower)
	if tb != 7 || bb != 693 {
		t.Errorf("post-transfer treasury=%d borrower=%d", tb, bb)
	}
}

func TestResolve_EmptySymbol(t *testing.T) {
	repo := NewLedgerRepository(nil, id.NewID32())
	if _, err := repo.Resolve(""); !errors.Is(err, token.ErrUnsupportedMedium) {
		t.Fatalf("expected ErrUnsupportedMedium, got %v", err)
	}
}
