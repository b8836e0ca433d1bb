package mysql

import (
	"context"
	"errors"
	"testing"

	domain "rwalend/internal/domain/asset"
	"rwalend/pkg/id"

	"gorm.io/gorm"
)

// openAssetTestDB migrates the asset domain model, which is sqlite-clean.
func openAssetTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(&domain.Asset{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeAsset(assetID, ownerID string) *domain.Asset {
	return &domain.Asset{
		AssetID:   assetID,
		OwnerID:   ownerID,
		AssetType: "invoice",
		Valuation: 1_000,
		MaxLtvBps: 7_000,
	}
}

func TestAssetCreateAndGet(t *testing.T) {
	db := openAssetTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	assetID := id.NewID32()
	owner := id.NewID32()
	if err := repo.Create(ctx, makeAsset(assetID, owner)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByAssetID(ctx, assetID)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if got.OwnerID != owner || got.IsLocked {
		t.Errorf("unexpected asset: %+v", got)
	}
	if got.MaxLoanAmount() != 700 {
		t.Errorf("MaxLoanAmount = %d, want 700", got.MaxLoanAmount())
	}

	if _, err := repo.GetByAssetID(ctx, "ffffffffffffffffffffffffffffffff"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAssetSavePersistsLockState(t *testing.T) {
	db := openAssetTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	assetID := id.NewID32()
	a := makeAsset(assetID, id.NewID32())
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	loanID := id.NewID32()
	if err := a.LockFor(loanID); err != nil {
		t.Fatalf("LockFor: %v", err)
	}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByAssetIDForUpdate(ctx, assetID)
	if err != nil {
		t.Fatalf("GetByAssetIDForUpdate: %v", err)
	}
	if !got.IsLocked || got.LoanID != loanID {
		t.Errorf("lock state not persisted: %+v", got)
	}

	got.Unlock()
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save unlock: %v", err)
	}
	reread, err := repo.GetByAssetID(ctx, assetID)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if reread.IsLocked || reread.LoanID != "" {
		t.Errorf("unlock not persisted: %+v", reread)
	}
}

func TestAssetSavePersistsOwnershipTransfer(t *testing.T) {
	db := openAssetTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	assetID := id.NewID32()
	owner := id.NewID32()
	lender := id.NewID32()

	a := makeAsset(assetID, owner)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := a.TransferTo(owner, lender); err != nil {
		t.Fatalf("TransferTo: %v", err)
	}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByAssetID(ctx, assetID)
	if err != nil {
		t.Fatalf("GetByAssetID: %v", err)
	}
	if got.OwnerID != lender {
		t.Errorf("OwnerID = %s, want %s", got.OwnerID, lender)
	}
}
