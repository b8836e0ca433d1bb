package http

import (
	"net/http"

	"rwalend/internal/usecase/engine"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *engine.Usecase }

func NewLoanHandler(uc *engine.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	AssetID         string `json:"asset_id"          validate:"required,hex32"`
	Principal       int64  `json:"principal"         validate:"required,gt=0"`
	InterestRateBps int64  `json:"interest_rate_bps" validate:"bps"`
	DurationSeconds int64  `json:"duration_seconds"  validate:"required,gt=0"`
	ValueMedium     string `json:"value_medium"      validate:"required,symbol"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), caller, engine.CreateLoanInput{
		AssetID:         req.AssetID,
		Principal:       req.Principal,
		InterestRateBps: req.InterestRateBps,
		DurationSeconds: req.DurationSeconds,
		ValueMedium:     req.ValueMedium,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	dto, err := h.uc.Fund(c.Request().Context(), caller, c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayReq struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) MakeRepayment(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Repay(c.Request().Context(), caller, c.Param("loan_id"), req.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// LiquidateLoan is open to any authenticated caller once the deadline plus
// grace period has passed.
func (h *LoanHandler) LiquidateLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	dto, err := h.uc.Liquidate(c.Request().Context(), caller, c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) IsOverdue(c echo.Context) error {
	overdue, err := h.uc.IsOverdue(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"overdue": overdue})
}

func (h *LoanHandler) ListBorrowerLoans(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if !reHex32.MatchString(borrowerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
	}
	loans, err := h.uc.ListByBorrower(c.Request().Context(), borrowerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}
