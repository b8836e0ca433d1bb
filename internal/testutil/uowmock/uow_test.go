package uowmock

import (
	"context"
	"errors"
	"testing"

	domain "rwalend/internal/domain/loan"
	"rwalend/internal/domain/uow"
	"rwalend/internal/testutil/loanmock"
)

func TestWithinTx_PassesRepos(t *testing.T) {
	loans := &loanmock.Repo{}
	u := New(uow.Repos{Loans: loans})

	called := false
	err := u.WithinTx(context.Background(), func(r uow.Repos) error {
		called = true
		if r.Loans != loans {
			t.Fatalf("repos not passed through")
		}
		return nil
	})
	if err != nil || !called {
		t.Fatalf("WithinTx err=%v called=%v", err, called)
	}

	sentinel := errors.New("boom")
	if err := u.WithinTx(context.Background(), func(uow.Repos) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}

func TestWithinLoanTx_FetchesLockedLoan(t *testing.T) {
	want := &domain.Loan{LoanID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, loanID string) (*domain.Loan, error) {
			if loanID != want.LoanID {
				t.Fatalf("loanID = %s", loanID)
			}
			return want, nil
		},
	}
	u := New(uow.Repos{Loans: loans})

	err := u.WithinLoanTx(context.Background(), want.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l != want {
			t.Fatalf("unexpected loan: %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
}

func TestWithinLoanTx_LookupFailureShortCircuits(t *testing.T) {
	sentinel := errors.New("no rows")
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(context.Context, string) (*domain.Loan, error) {
			return nil, sentinel
		},
	}
	u := New(uow.Repos{Loans: loans})

	err := u.WithinLoanTx(context.Background(), "whatever", func(uow.Repos, *domain.Loan) error {
		t.Fatalf("callback must not run when the loan is missing")
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}
