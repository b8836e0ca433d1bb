package mysql

import (
	"context"

	assetDomain "rwalend/internal/domain/asset"

	"gorm.io/gorm"
)

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Create(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssetRepository) Save(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AssetRepository) GetByAssetID(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

// GetByAssetIDForUpdate takes a row lock so the is_locked check and flip are
// race-free under concurrent creates.
func (r *AssetRepository) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := forUpdate(r.db.WithContext(ctx)).
		Where("asset_id = ?", assetID).
		First(&out)
	return &out, res.Error
}
