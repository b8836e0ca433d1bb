package http

import (
	"errors"
	"net/http"
	"strings"

	"rwalend/internal/domain/asset"
	"rwalend/internal/domain/loan"
	"rwalend/internal/domain/platform"
	"rwalend/internal/domain/token"

	"github.com/labstack/echo/v4"
)

// CallerHeader carries the platform's ambient identity; upstream
// verification decides who may reach this service at all.
const CallerHeader = "Ax-Caller-Id"

func callerID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(CallerHeader))
	return id, reHex32.MatchString(id)
}

// statusFor keeps each domain failure reason distinguishable: the sentinel's
// message travels in the body, the class picks the code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, asset.ErrNotFound),
		errors.Is(err, platform.ErrSettingsNotFound),
		errors.Is(err, platform.ErrMediumNotFound),
		errors.Is(err, token.ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, platform.ErrNotAdmin),
		errors.Is(err, asset.ErrNotEngine),
		errors.Is(err, asset.ErrNotOwner),
		errors.Is(err, loan.ErrNotBorrower):
		return http.StatusForbidden

	case errors.Is(err, asset.ErrAlreadyLocked),
		errors.Is(err, loan.ErrAlreadyFunded),
		errors.Is(err, loan.ErrNotActive),
		errors.Is(err, loan.ErrNotFunded),
		errors.Is(err, loan.ErrGracePeriodActive),
		errors.Is(err, platform.ErrMediumExists),
		errors.Is(err, token.ErrInsufficientBalance),
		errors.Is(err, token.ErrInsufficientAllowance):
		return http.StatusConflict

	case errors.Is(err, loan.ErrInvalidPrincipal),
		errors.Is(err, loan.ErrInvalidDuration),
		errors.Is(err, loan.ErrInvalidRate),
		errors.Is(err, loan.ErrExceedsMaxLoan),
		errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrExceedsOutstanding),
		errors.Is(err, loan.ErrAmountOverflow),
		errors.Is(err, token.ErrUnsupportedMedium),
		errors.Is(err, token.ErrInvalidAmount),
		errors.Is(err, platform.ErrFeeTooHigh),
		errors.Is(err, platform.ErrEmptyRecipient),
		errors.Is(err, platform.ErrNegativeGrace),
		errors.Is(err, asset.ErrInvalidLtv),
		errors.Is(err, asset.ErrInvalidValuation):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func fail(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
