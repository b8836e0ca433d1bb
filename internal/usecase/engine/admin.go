package engine

import (
	"context"

	"rwalend/internal/domain/platform"
	"rwalend/internal/domain/uow"
	"rwalend/pkg/id"
)

// Admin entry points. Each is independently settable and gated on the
// configured admin identity; settings are read-modified-saved inside a
// transaction so concurrent admin calls serialize on the singleton row.

func (u *Usecase) SetPlatformFeeBps(ctx context.Context, caller string, feeBps int64) error {
	if caller != u.ids.AdminID {
		return platform.ErrNotAdmin
	}
	if feeBps < 0 || feeBps > platform.MaxPlatformFeeBps {
		return platform.ErrFeeTooHigh
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Platform.GetSettings(ctx)
		if err != nil {
			return err
		}
		s.PlatformFeeBps = feeBps
		return r.Platform.SaveSettings(ctx, s)
	})
}

func (u *Usecase) SetFeeRecipient(ctx context.Context, caller, recipientID string) error {
	if caller != u.ids.AdminID {
		return platform.ErrNotAdmin
	}
	if !id.IsID32(recipientID) {
		return platform.ErrEmptyRecipient
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Platform.GetSettings(ctx)
		if err != nil {
			return err
		}
		s.FeeRecipientID = recipientID
		return r.Platform.SaveSettings(ctx, s)
	})
}

func (u *Usecase) SetGracePeriodSeconds(ctx context.Context, caller string, seconds int64) error {
	if caller != u.ids.AdminID {
		return platform.ErrNotAdmin
	}
	if seconds < 0 {
		return platform.ErrNegativeGrace
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Platform.GetSettings(ctx)
		if err != nil {
			return err
		}
		s.GracePeriodSeconds = seconds
		return r.Platform.SaveSettings(ctx, s)
	})
}

func (u *Usecase) AddValueMedium(ctx context.Context, caller, symbol string) error {
	if caller != u.ids.AdminID {
		return platform.ErrNotAdmin
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		supported, err := r.Platform.IsMediumSupported(ctx, symbol)
		if err != nil {
			return err
		}
		if supported {
			return platform.ErrMediumExists
		}
		return r.Platform.AddMedium(ctx, symbol)
	})
}

// RemoveValueMedium only blocks new loans in that medium; existing loans keep
// repaying through the ledger they were created against.
func (u *Usecase) RemoveValueMedium(ctx context.Context, caller, symbol string) error {
	if caller != u.ids.AdminID {
		return platform.ErrNotAdmin
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		supported, err := r.Platform.IsMediumSupported(ctx, symbol)
		if err != nil {
			return err
		}
		if !supported {
			return platform.ErrMediumNotFound
		}
		return r.Platform.RemoveMedium(ctx, symbol)
	})
}

func (u *Usecase) GetSettings(ctx context.Context) (*SettingsDTO, error) {
	var dto *SettingsDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Platform.GetSettings(ctx)
		if err != nil {
			return err
		}
		mediums, err := r.Platform.ListMediums(ctx)
		if err != nil {
			return err
		}
		symbols := make([]string, 0, len(mediums))
		for _, m := range mediums {
			symbols = append(symbols, m.Symbol)
		}
		dto = &SettingsDTO{
			PlatformFeeBps:     s.PlatformFeeBps,
			FeeRecipientID:     s.FeeRecipientID,
			GracePeriodSeconds: s.GracePeriodSeconds,
			ValueMediums:       symbols,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
