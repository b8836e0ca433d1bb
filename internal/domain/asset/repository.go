package asset

import "context"

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
	// GetByAssetIDForUpdate row-locks the asset inside a transaction.
	GetByAssetIDForUpdate(ctx context.Context, assetID string) (*Asset, error)
	Save(ctx context.Context, a *Asset) error
}
