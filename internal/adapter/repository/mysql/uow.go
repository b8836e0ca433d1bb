package mysql

import (
	"context"

	"rwalend/internal/domain/loan"
	"rwalend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct {
	db         *gorm.DB
	treasuryID string
}

func NewGormUoW(db *gorm.DB, treasuryID string) *GormUoW {
	return &GormUoW{db: db, treasuryID: treasuryID}
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Assets:   &AssetRepository{db: tx},
		Loans:    &LoanRepository{db: tx},
		Platform: &PlatformRepository{db: tx},
		Ledger:   &LedgerRepository{db: tx, treasuryID: u.treasuryID},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
