package uowmock

import (
	"context"

	"rwalend/internal/domain/loan"
	"rwalend/internal/domain/uow"
)

// UoW passes a fixed Repos set straight through — no transaction semantics,
// so tests observe exactly the mutations the usecase performs.
type UoW struct {
	Repos uow.Repos
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(u.Repos)
}

func (u *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := u.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(u.Repos, l)
}
