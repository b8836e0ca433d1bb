package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "rwalend/internal/adapter/http"
	"rwalend/internal/adapter/middleware"
	"rwalend/internal/adapter/repository/mysql"
	"rwalend/internal/config"
	"rwalend/internal/domain/asset"
	"rwalend/internal/domain/loan"
	"rwalend/internal/domain/platform"
	"rwalend/internal/domain/token"
	"rwalend/internal/infrastructure/cache"
	"rwalend/internal/infrastructure/db"
	"rwalend/internal/usecase/engine"
	"rwalend/internal/usecase/registry"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&asset.Asset{}, &loan.Loan{},
		&platform.Settings{}, &platform.ValueMedium{},
		&token.Account{}, &token.Allowance{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	platformRepo := mysql.NewPlatformRepository(gdb)
	if err := platformRepo.SeedSettings(ctx, platform.DefaultSettings(
		cfg.PlatformFeeBps, cfg.FeeRecipient, cfg.GracePeriodSeconds,
	)); err != nil {
		log.Fatalf("seed settings: %v", err)
	}
	for _, symbol := range cfg.ValueMediums {
		supported, err := platformRepo.IsMediumSupported(ctx, symbol)
		if err != nil {
			log.Fatalf("seed mediums: %v", err)
		}
		if !supported {
			if err := platformRepo.AddMedium(ctx, symbol); err != nil {
				log.Fatalf("seed mediums: %v", err)
			}
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	assetRepo := mysql.NewAssetRepository(gdb)
	ledgerRepo := mysql.NewLedgerRepository(gdb, cfg.TreasuryID)
	gormUoW := mysql.NewGormUoW(gdb, cfg.TreasuryID)

	engineUC := engine.NewUsecase(gormUoW, loanRepo, engine.Identities{
		AdminID:    cfg.AdminID,
		TreasuryID: cfg.TreasuryID,
	})
	// lock/unlock/transfer callers must present the treasury identity
	registryUC := registry.NewUsecase(assetRepo, cfg.TreasuryID)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(engineUC)
	assetH := httpadp.NewAssetHandler(registryUC)
	adminH := httpadp.NewAdminHandler(engineUC)
	ledgerH := httpadp.NewLedgerHandler(ledgerRepo, cfg.TreasuryID)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/assets", assetH.MintAsset)
	e.GET("/assets/:asset_id", assetH.GetAsset)
	e.GET("/assets/:asset_id/max-loan", assetH.MaxLoanAmount)

	e.POST("/loans", loanH.CreateLoan)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.GET("/loans/:loan_id/overdue", loanH.IsOverdue)
	e.POST("/loans/:loan_id/fund", loanH.FundLoan)
	e.POST("/loans/:loan_id/repayments", loanH.MakeRepayment)
	e.POST("/loans/:loan_id/liquidate", loanH.LiquidateLoan)
	e.GET("/borrowers/:borrower_id/loans", loanH.ListBorrowerLoans)

	e.GET("/admin/settings", adminH.GetSettings)
	e.PUT("/admin/platform-fee", adminH.SetPlatformFee)
	e.PUT("/admin/fee-recipient", adminH.SetFeeRecipient)
	e.PUT("/admin/grace-period", adminH.SetGracePeriod)
	e.POST("/admin/value-mediums", adminH.AddValueMedium)
	e.DELETE("/admin/value-mediums/:symbol", adminH.RemoveValueMedium)

	e.POST("/ledger/:symbol/deposits", ledgerH.Deposit)
	e.POST("/ledger/:symbol/approvals", ledgerH.Approve)
	e.GET("/ledger/:symbol/accounts/:account_id", ledgerH.GetAccount)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
