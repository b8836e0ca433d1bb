package registry

import "time"

type MintInput struct {
	OwnerID   string `json:"owner_id"`
	AssetType string `json:"asset_type"`
	Valuation int64  `json:"valuation"`
	MaxLtvBps int64  `json:"max_ltv_bps"`
}

type AssetDTO struct {
	AssetID   string    `json:"asset_id"`
	OwnerID   string    `json:"owner_id"`
	AssetType string    `json:"asset_type"`
	Valuation int64     `json:"valuation"`
	MaxLtvBps int64     `json:"max_ltv_bps"`
	IsLocked  bool      `json:"is_locked"`
	LoanID    string    `json:"loan_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
