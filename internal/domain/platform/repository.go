package platform

import "context"

type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error

	IsMediumSupported(ctx context.Context, symbol string) (bool, error)
	AddMedium(ctx context.Context, symbol string) error
	RemoveMedium(ctx context.Context, symbol string) error
	ListMediums(ctx context.Context) ([]ValueMedium, error)
}
