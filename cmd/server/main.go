package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/insuranceguard/insuranceguard/internal/api"
	cronapi "github.com/insuranceguard/insuranceguard/internal/api/cron"
	v1 "github.com/insuranceguard/insuranceguard/internal/api/v1"
	"github.com/insuranceguard/insuranceguard/internal/clock"
	"github.com/insuranceguard/insuranceguard/internal/config"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/persistence"
	"github.com/insuranceguard/insuranceguard/internal/service"
	"github.com/insuranceguard/insuranceguard/internal/store"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalw("failed to load configuration", "error", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.L.Fatalw("failed to initialize logger", "error", err)
	}

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshot := persistence.NewSnapshotFile(cfg.Data.Path, log)
	db, err := store.Open(ctx, snapshot, log)
	if err != nil {
		log.Fatalw("failed to open dataset", "path", cfg.Data.Path, "error", err)
	}

	clk := clock.SystemClock{}
	params := service.ServiceParams{
		Logger:       log,
		Config:       cfg,
		DB:           db,
		Clock:        clk,
		IDGen:        types.NewIDGenerator(clk.Now, types.MathRandSource{}),
		CustomerRepo: db.CustomerRepo(),
		InvoiceRepo:  db.InvoiceRepo(),
		PayoutRepo:   db.PayoutRepo(),
		LedgerRepo:   db.LedgerRepo(),
		AuditRepo:    db.AuditRepo(),
		Notifier:     notifier.NewWebhookNotifier(cfg.Webhook, log),
	}

	customerService := service.NewCustomerService(params)
	invoiceService := service.NewInvoiceService(params)
	payoutService := service.NewPayoutService(params)
	ledgerService := service.NewLedgerService(params)
	dunningService := service.NewDunningService(params)

	backupper := persistence.NewBackupper(
		cfg.Data.Path, cfg.Data.BackupDir, cfg.Data.BackupInterval, log)

	router := api.NewRouter(api.Handlers{
		Health:      v1.NewHealthHandler(log),
		Customer:    v1.NewCustomerHandler(customerService, log),
		Invoice:     v1.NewInvoiceHandler(invoiceService, dunningService, log),
		Payout:      v1.NewPayoutHandler(payoutService, log),
		Ledger:      v1.NewLedgerHandler(ledgerService, log),
		Audit:       v1.NewAuditHandler(params.AuditRepo, log),
		CronDunning: cronapi.NewDunningHandler(dunningService, log),
		CronBackup:  cronapi.NewBackupHandler(backupper, log),
	})

	scheduler := service.NewSweepScheduler(dunningService, cfg.Dunning.SweepInterval, log)
	go scheduler.Run(ctx)
	go backupper.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}
}
