package registry

import (
	"context"
	"errors"

	"rwalend/internal/domain/asset"
	"rwalend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the Asset Registry: catalog of collateral assets, their
// valuation, lock state and ownership. Valuation and max LTV arrive from the
// off-chain valuation pipeline at mint time and are taken at face value.
type Usecase struct {
	assets   asset.Repository
	engineID string
}

// NewUsecase wires the registry with the identity allowed to lock, unlock and
// transfer collateral (the loan engine). Every other caller is rejected on
// those operations.
func NewUsecase(assets asset.Repository, engineID string) *Usecase {
	return &Usecase{assets: assets, engineID: engineID}
}

func (u *Usecase) Mint(ctx context.Context, in MintInput) (*AssetDTO, error) {
	if !id.IsID32(in.OwnerID) {
		return nil, asset.ErrNotOwner
	}
	if in.Valuation <= 0 {
		return nil, asset.ErrInvalidValuation
	}
	if in.MaxLtvBps < 0 || in.MaxLtvBps > 10_000 {
		return nil, asset.ErrInvalidLtv
	}

	a := &asset.Asset{
		AssetID:   id.NewID32(),
		OwnerID:   in.OwnerID,
		AssetType: in.AssetType,
		Valuation: in.Valuation,
		MaxLtvBps: in.MaxLtvBps,
	}
	if err := u.assets.Create(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, assetID string) (*AssetDTO, error) {
	a, err := u.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

// MaxLoanAmount = valuation * maxLtvBps / 10000, truncated.
func (u *Usecase) MaxLoanAmount(ctx context.Context, assetID string) (int64, error) {
	a, err := u.getAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return a.MaxLoanAmount(), nil
}

// Lock reserves the asset for a loan. Engine-only.
func (u *Usecase) Lock(ctx context.Context, caller, assetID, loanID string) error {
	if caller != u.engineID {
		return asset.ErrNotEngine
	}
	a, err := u.getAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if err := a.LockFor(loanID); err != nil {
		return err
	}
	return u.assets.Save(ctx, a)
}

// Unlock clears the lock and the loan back-reference. Engine-only.
func (u *Usecase) Unlock(ctx context.Context, caller, assetID string) error {
	if caller != u.engineID {
		return asset.ErrNotEngine
	}
	a, err := u.getAsset(ctx, assetID)
	if err != nil {
		return err
	}
	a.Unlock()
	return u.assets.Save(ctx, a)
}

// TransferOwnership moves the asset from -> to; used at liquidation.
// Engine-only.
func (u *Usecase) TransferOwnership(ctx context.Context, caller, assetID, from, to string) error {
	if caller != u.engineID {
		return asset.ErrNotEngine
	}
	a, err := u.getAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if err := a.TransferTo(from, to); err != nil {
		return err
	}
	return u.assets.Save(ctx, a)
}

func (u *Usecase) getAsset(ctx context.Context, assetID string) (*asset.Asset, error) {
	a, err := u.assets.GetByAssetID(ctx, assetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asset.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func toDTO(a *asset.Asset) *AssetDTO {
	return &AssetDTO{
		AssetID:   a.AssetID,
		OwnerID:   a.OwnerID,
		AssetType: a.AssetType,
		Valuation: a.Valuation,
		MaxLtvBps: a.MaxLtvBps,
		IsLocked:  a.IsLocked,
		LoanID:    a.LoanID,
		CreatedAt: a.CreatedAt,
	}
}
