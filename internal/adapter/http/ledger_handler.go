package http

import (
	"net/http"

	"rwalend/internal/domain/token"

	"github.com/labstack/echo/v4"
)

// LedgerHandler exposes the stablecoin ledger's out-of-band operations:
// deposits fund an account, approvals authorize the platform treasury to pull
// from it during funding and repayment.
type LedgerHandler struct {
	ledger     token.Ledger
	treasuryID string
}

func NewLedgerHandler(ledger token.Ledger, treasuryID string) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, treasuryID: treasuryID}
}

type depositReq struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *LedgerHandler) Deposit(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	symbol := c.Param("symbol")
	if !reSymbol.MatchString(symbol) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid medium symbol"})
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.ledger.Deposit(c.Request().Context(), symbol, caller, req.Amount); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

type approveReq struct {
	Amount int64 `json:"amount" validate:"gte=0"`
}

// Approve sets the caller's allowance for the treasury spender.
func (h *LedgerHandler) Approve(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	symbol := c.Param("symbol")
	if !reSymbol.MatchString(symbol) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid medium symbol"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.ledger.Approve(c.Request().Context(), symbol, caller, h.treasuryID, req.Amount); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LedgerHandler) GetAccount(c echo.Context) error {
	symbol := c.Param("symbol")
	accountID := c.Param("account_id")
	if !reSymbol.MatchString(symbol) || !reHex32.MatchString(accountID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid medium symbol or account id"})
	}
	ctx := c.Request().Context()
	balance, err := h.ledger.BalanceOf(ctx, symbol, accountID)
	if err != nil {
		return fail(c, err)
	}
	allowance, err := h.ledger.AllowanceOf(ctx, symbol, accountID, h.treasuryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"medium":             symbol,
		"account_id":         accountID,
		"balance":            balance,
		"treasury_allowance": allowance,
	})
}
