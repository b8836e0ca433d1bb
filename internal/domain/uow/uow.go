package uow

import (
	"context"

	"rwalend/internal/domain/asset"
	"rwalend/internal/domain/loan"
	"rwalend/internal/domain/platform"
	"rwalend/internal/domain/token"
)

type Repos struct {
	Assets   asset.Repository
	Loans    loan.Repository
	Platform platform.Repository
	Ledger   token.Ledger
}

// UnitOfWork is the single failure domain of every lifecycle operation: all
// repo mutations and all ledger transfers inside fn commit or roll back as
// one.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
