package engine

import (
	"context"
	"errors"
	"time"

	domainAsset "rwalend/internal/domain/asset"
	domainLoan "rwalend/internal/domain/loan"
	"rwalend/internal/domain/token"
	"rwalend/internal/domain/uow"
	"rwalend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the loan lifecycle engine: a strictly serialized state machine
// over loans and their collateral. Every lifecycle entry point runs inside
// one unit-of-work transaction, so field mutations and ledger transfers
// commit or abort as a single unit.
type Usecase struct {
	uow   uow.UnitOfWork
	loans domainLoan.Repository
	ids   Identities
	nowFn func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, loans domainLoan.Repository, ids Identities) *Usecase {
	return &Usecase{uow: tx, loans: loans, ids: ids, nowFn: func() time.Time { return time.Now().UTC() }}
}

// WithNow overrides the clock; tests drive time through this seam.
func (u *Usecase) WithNow(nowFn func() time.Time) *Usecase {
	u.nowFn = nowFn
	return u
}

// Create reserves collateral and fixes the loan terms. No value moves here.
// Precondition order is part of the contract: medium allow-listed, caller
// owns the asset, asset unlocked, principal > 0, duration > 0, rate within
// cap, principal within the asset's max loan amount.
func (u *Usecase) Create(ctx context.Context, caller string, in CreateLoanInput) (*LoanDTO, error) {
	var dto *LoanDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		supported, err := r.Platform.IsMediumSupported(ctx, in.ValueMedium)
		if err != nil {
			return err
		}
		if !supported {
			return token.ErrUnsupportedMedium
		}

		a, err := r.Assets.GetByAssetIDForUpdate(ctx, in.AssetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainAsset.ErrNotFound
		}
		if err != nil {
			return err
		}
		if a.OwnerID != caller {
			return domainAsset.ErrNotOwner
		}
		if a.IsLocked {
			return domainAsset.ErrAlreadyLocked
		}
		if in.Principal <= 0 {
			return domainLoan.ErrInvalidPrincipal
		}
		if in.DurationSeconds <= 0 {
			return domainLoan.ErrInvalidDuration
		}
		if in.InterestRateBps < 0 || in.InterestRateBps > 10_000 {
			return domainLoan.ErrInvalidRate
		}
		if in.Principal > a.MaxLoanAmount() {
			return domainLoan.ErrExceedsMaxLoan
		}

		total, err := totalRepayment(in.Principal, in.InterestRateBps, in.DurationSeconds)
		if err != nil {
			return err
		}

		l := &domainLoan.Loan{
			LoanID:          id.NewID32(),
			BorrowerID:      caller,
			AssetID:         a.AssetID,
			Principal:       in.Principal,
			InterestRateBps: in.InterestRateBps,
			DurationSeconds: in.DurationSeconds,
			TotalRepayment:  total,
			Status:          domainLoan.StatusActive,
			ValueMedium:     in.ValueMedium,
			StatusUpdatedAt: u.nowFn(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		if err := a.LockFor(l.LoanID); err != nil {
			return err
		}
		if err := r.Assets.Save(ctx, a); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Fund moves principal from the lender and starts the clock. Exactly-once: a
// loan with a lender set is rejected with ErrAlreadyFunded regardless of
// caller; terminal loans are rejected with ErrNotActive.
func (u *Usecase) Fund(ctx context.Context, caller, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO

	err := u.withinLoan(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrNotActive
		}
		if l.Funded() {
			return domainLoan.ErrAlreadyFunded
		}

		s, err := r.Platform.GetSettings(ctx)
		if err != nil {
			return err
		}
		med, err := r.Ledger.Resolve(l.ValueMedium)
		if err != nil {
			return err
		}

		// Pull the full principal into the treasury, then split it between
		// borrower and fee recipient. Any failed leg rolls back every leg.
		fee := platformFee(l.Principal, s.PlatformFeeBps)
		if err := med.TransferFrom(ctx, caller, u.ids.TreasuryID, l.Principal); err != nil {
			return err
		}
		if err := med.Transfer(ctx, l.BorrowerID, l.Principal-fee); err != nil {
			return err
		}
		if fee > 0 {
			if err := med.Transfer(ctx, s.FeeRecipientID, fee); err != nil {
				return err
			}
		}

		l.LenderID = caller
		l.StartTime = u.nowFn().Unix()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Repay pulls amount from the borrower straight to the lender (no fee).
// Reaching the exact total flips the loan to repaid and releases the
// collateral in the same transaction.
func (u *Usecase) Repay(ctx context.Context, caller, loanID string, amount int64) (*LoanDTO, error) {
	var dto *LoanDTO

	err := u.withinLoan(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.Funded() {
			return domainLoan.ErrNotFunded
		}
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrNotActive
		}
		if caller != l.BorrowerID {
			return domainLoan.ErrNotBorrower
		}
		if amount <= 0 {
			return domainLoan.ErrInvalidAmount
		}
		if amount > l.Outstanding() {
			return domainLoan.ErrExceedsOutstanding
		}

		med, err := r.Ledger.Resolve(l.ValueMedium)
		if err != nil {
			return err
		}
		if err := med.TransferFrom(ctx, l.BorrowerID, l.LenderID, amount); err != nil {
			return err
		}

		l.AmountRepaid += amount
		if l.AmountRepaid == l.TotalRepayment {
			l.Status = domainLoan.StatusRepaid
			l.StatusUpdatedAt = u.nowFn()

			a, err := r.Assets.GetByAssetIDForUpdate(ctx, l.AssetID)
			if err != nil {
				return err
			}
			a.Unlock()
			if err := r.Assets.Save(ctx, a); err != nil {
				return err
			}
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Liquidate is open to any caller once the term plus grace period has
// strictly elapsed. Collateral ownership moves to the lender; partial
// repayments already made are not refunded.
func (u *Usecase) Liquidate(ctx context.Context, caller, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO

	err := u.withinLoan(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.Funded() {
			return domainLoan.ErrNotFunded
		}
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrNotActive
		}

		s, err := r.Platform.GetSettings(ctx)
		if err != nil {
			return err
		}
		if !l.LiquidatableAt(u.nowFn().Unix(), s.GracePeriodSeconds) {
			return domainLoan.ErrGracePeriodActive
		}

		a, err := r.Assets.GetByAssetIDForUpdate(ctx, l.AssetID)
		if err != nil {
			return err
		}
		if err := a.TransferTo(l.BorrowerID, l.LenderID); err != nil {
			return err
		}
		a.Unlock()
		if err := r.Assets.Save(ctx, a); err != nil {
			return err
		}

		l.Status = domainLoan.StatusLiquidated
		l.StatusUpdatedAt = u.nowFn()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toLoanDTO(l), nil
}

// IsOverdue ignores the grace period: it is the earlier "past due" signal,
// not liquidation eligibility.
func (u *Usecase) IsOverdue(ctx context.Context, loanID string) (bool, error) {
	l, err := u.getLoan(ctx, loanID)
	if err != nil {
		return false, err
	}
	return l.OverdueAt(u.nowFn().Unix()), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	ls, err := u.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toLoanDTO(&ls[i]))
	}
	return out, nil
}

func (u *Usecase) getLoan(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLoan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (u *Usecase) withinLoan(ctx context.Context, loanID string, fn func(r uow.Repos, l *domainLoan.Loan) error) error {
	err := u.uow.WithinLoanTx(ctx, loanID, fn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainLoan.ErrNotFound
	}
	return err
}

func toLoanDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		BorrowerID:      l.BorrowerID,
		LenderID:        l.LenderID,
		AssetID:         l.AssetID,
		Principal:       l.Principal,
		InterestRateBps: l.InterestRateBps,
		DurationSeconds: l.DurationSeconds,
		StartTime:       l.StartTime,
		TotalRepayment:  l.TotalRepayment,
		AmountRepaid:    l.AmountRepaid,
		Outstanding:     l.Outstanding(),
		Status:          string(l.Status),
		Funded:          l.Funded(),
		ValueMedium:     l.ValueMedium,
		CreatedAt:       l.CreatedAt,
	}
}
