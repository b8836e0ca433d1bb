package mysql

import (
	"context"
	"errors"

	platformDomain "rwalend/internal/domain/platform"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlatformRepository struct{ db *gorm.DB }

func NewPlatformRepository(db *gorm.DB) *PlatformRepository { return &PlatformRepository{db: db} }

func (r *PlatformRepository) GetSettings(ctx context.Context) (*platformDomain.Settings, error) {
	var out platformDomain.Settings
	res := r.db.WithContext(ctx).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, platformDomain.ErrSettingsNotFound
	}
	return &out, res.Error
}

func (r *PlatformRepository) SaveSettings(ctx context.Context, s *platformDomain.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// SeedSettings inserts the singleton row if missing; startup-only.
func (r *PlatformRepository) SeedSettings(ctx context.Context, s *platformDomain.Settings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(s).Error
}

func (r *PlatformRepository) IsMediumSupported(ctx context.Context, symbol string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&platformDomain.ValueMedium{}).
		Where("symbol = ?", symbol).
		Count(&n)
	return n > 0, res.Error
}

func (r *PlatformRepository) AddMedium(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).Create(&platformDomain.ValueMedium{Symbol: symbol}).Error
}

func (r *PlatformRepository) RemoveMedium(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Delete(&platformDomain.ValueMedium{}).Error
}

func (r *PlatformRepository) ListMediums(ctx context.Context) ([]platformDomain.ValueMedium, error) {
	var out []platformDomain.ValueMedium
	res := r.db.WithContext(ctx).Order("symbol ASC").Find(&out)
	return out, res.Error
}
