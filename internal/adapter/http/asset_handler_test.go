package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"testing"

	domainAsset "rwalend/internal/domain/asset"
	"rwalend/internal/testutil/assetmock"
	"rwalend/internal/usecase/registry"

	"gorm.io/gorm"
)

func newAssetHandler(store map[string]*domainAsset.Asset) *AssetHandler {
	repo := &assetmock.Repo{
		CreateFn: func(_ context.Context, a *domainAsset.Asset) error {
			store[a.AssetID] = a
			return nil
		},
		GetByAssetIDFn: func(_ context.Context, assetID string) (*domainAsset.Asset, error) {
			a, ok := store[assetID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return a, nil
		},
	}
	return NewAssetHandler(registry.NewUsecase(repo, tTreasury))
}

func TestMintAsset_Success(t *testing.T) {
	e := newEchoWithValidator()
	store := map[string]*domainAsset.Asset{}
	h := newAssetHandler(store)

	body := map[string]any{
		"owner_id":    tBorrower,
		"asset_type":  "real-estate",
		"valuation":   1000,
		"max_ltv_bps": 7000,
	}
	rec := doRequest(e, h.MintAsset, stdhttp.MethodPost, "/assets", "", body)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var dto registry.AssetDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(dto.AssetID) != 32 || dto.OwnerID != tBorrower || dto.IsLocked {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestMintAsset_Validation(t *testing.T) {
	e := newEchoWithValidator()
	h := newAssetHandler(map[string]*domainAsset.Asset{})

	body := map[string]any{
		"owner_id":    "nope",
		"asset_type":  "",
		"valuation":   -1,
		"max_ltv_bps": 20000,
	}
	rec := doRequest(e, h.MintAsset, stdhttp.MethodPost, "/assets", "", body)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "OwnerID", "hex") {
		t.Errorf("missing OwnerID detail: %v", er.Details)
	}
	if !containsFieldMsg(er.Details, "AssetType", "required") {
		t.Errorf("missing AssetType detail: %v", er.Details)
	}
	if !containsFieldMsg(er.Details, "MaxLtvBps", "basis points") {
		t.Errorf("missing MaxLtvBps detail: %v", er.Details)
	}
}

func TestGetAssetAndMaxLoan(t *testing.T) {
	e := newEchoWithValidator()
	store := map[string]*domainAsset.Asset{
		testAssetID: {
			AssetID: testAssetID, OwnerID: tBorrower,
			AssetType: "invoice", Valuation: 1_000, MaxLtvBps: 7_000,
		},
	}
	h := newAssetHandler(store)

	rec := doRequest(e, h.GetAsset, stdhttp.MethodGet, "/assets/"+testAssetID, "", nil, "asset_id", testAssetID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(e, h.MaxLoanAmount, stdhttp.MethodGet, "/assets/"+testAssetID+"/max-loan", "", nil, "asset_id", testAssetID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["max_loan_amount"] != 700 {
		t.Fatalf("max_loan_amount = %d, want 700", body["max_loan_amount"])
	}

	rec = doRequest(e, h.GetAsset, stdhttp.MethodGet, "/assets/"+tOther, "", nil, "asset_id", tOther)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
