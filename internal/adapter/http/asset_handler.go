package http

import (
	"net/http"

	"rwalend/internal/usecase/registry"

	"github.com/labstack/echo/v4"
)

type AssetHandler struct{ uc *registry.Usecase }

func NewAssetHandler(uc *registry.Usecase) *AssetHandler { return &AssetHandler{uc: uc} }

type mintAssetReq struct {
	OwnerID   string `json:"owner_id"    validate:"required,hex32"`
	AssetType string `json:"asset_type"  validate:"required,max=64"`
	Valuation int64  `json:"valuation"   validate:"required,gt=0"`
	MaxLtvBps int64  `json:"max_ltv_bps" validate:"bps"`
}

// MintAsset registers collateral with the valuation and max LTV supplied by
// the off-platform valuation pipeline; provenance is not re-checked here.
func (h *AssetHandler) MintAsset(c echo.Context) error {
	var req mintAssetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Mint(c.Request().Context(), registry.MintInput{
		OwnerID:   req.OwnerID,
		AssetType: req.AssetType,
		Valuation: req.Valuation,
		MaxLtvBps: req.MaxLtvBps,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AssetHandler) GetAsset(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssetHandler) MaxLoanAmount(c echo.Context) error {
	amount, err := h.uc.MaxLoanAmount(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"max_loan_amount": amount})
}
