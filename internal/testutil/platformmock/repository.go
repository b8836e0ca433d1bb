package platformmock

import (
	"context"

	domain "rwalend/internal/domain/platform"
)

// Repo is a function-backed mock that satisfies platform.Repository.
type Repo struct {
	GetSettingsFn       func(ctx context.Context) (*domain.Settings, error)
	SaveSettingsFn      func(ctx context.Context, s *domain.Settings) error
	IsMediumSupportedFn func(ctx context.Context, symbol string) (bool, error)
	AddMediumFn         func(ctx context.Context, symbol string) error
	RemoveMediumFn      func(ctx context.Context, symbol string) error
	ListMediumsFn       func(ctx context.Context) ([]domain.ValueMedium, error)
}

func (m *Repo) GetSettings(ctx context.Context) (*domain.Settings, error) {
	if m.GetSettingsFn != nil {
		return m.GetSettingsFn(ctx)
	}
	return nil, domain.ErrSettingsNotFound
}

func (m *Repo) SaveSettings(ctx context.Context, s *domain.Settings) error {
	if m.SaveSettingsFn != nil {
		return m.SaveSettingsFn(ctx, s)
	}
	return nil
}

func (m *Repo) IsMediumSupported(ctx context.Context, symbol string) (bool, error) {
	if m.IsMediumSupportedFn != nil {
		return m.IsMediumSupportedFn(ctx, symbol)
	}
	return false, nil
}

func (m *Repo) AddMedium(ctx context.Context, symbol string) error {
	if m.AddMediumFn != nil {
		return m.AddMediumFn(ctx, symbol)
	}
	return nil
}

func (m *Repo) RemoveMedium(ctx context.Context, symbol string) error {
	if m.RemoveMediumFn != nil {
		return m.RemoveMediumFn(ctx, symbol)
	}
	return nil
}

func (m *Repo) ListMediums(ctx context.Context) ([]domain.ValueMedium, error) {
	if m.ListMediumsFn != nil {
		return m.ListMediumsFn(ctx)
	}
	return nil, nil
}
