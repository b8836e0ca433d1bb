package http

import (
	"net/http"

	"rwalend/internal/usecase/engine"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *engine.Usecase }

func NewAdminHandler(uc *engine.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

type setFeeReq struct {
	PlatformFeeBps int64 `json:"platform_fee_bps" validate:"gte=0,lte=1000"`
}

func (h *AdminHandler) SetPlatformFee(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	var req setFeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.SetPlatformFeeBps(c.Request().Context(), caller, req.PlatformFeeBps); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type setFeeRecipientReq struct {
	FeeRecipientID string `json:"fee_recipient_id" validate:"required,hex32"`
}

func (h *AdminHandler) SetFeeRecipient(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	var req setFeeRecipientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.SetFeeRecipient(c.Request().Context(), caller, req.FeeRecipientID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type setGraceReq struct {
	GracePeriodSeconds int64 `json:"grace_period_seconds" validate:"gte=0"`
}

func (h *AdminHandler) SetGracePeriod(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	var req setGraceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.SetGracePeriodSeconds(c.Request().Context(), caller, req.GracePeriodSeconds); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addMediumReq struct {
	Symbol string `json:"symbol" validate:"required,symbol"`
}

func (h *AdminHandler) AddValueMedium(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	var req addMediumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.AddValueMedium(c.Request().Context(), caller, req.Symbol); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *AdminHandler) RemoveValueMedium(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
	}
	if err := h.uc.RemoveValueMedium(c.Request().Context(), caller, c.Param("symbol")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	dto, err := h.uc.GetSettings(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
