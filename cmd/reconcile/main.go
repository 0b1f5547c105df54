// Command reconcile refunds pending credit charges left behind by crashed requests.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/adapter/repository"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/credit"
	"github.com/johnquangdev/meeting-recovery/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-recovery/pkg/logger"
)

func main() {
	olderThan := flag.Duration("older-than", 0, "refund pending charges older than this (0 uses CREDITS_STALE_CHARGE_AGE)")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := pkglogger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if *olderThan > 0 && *olderThan < cfg.Credits.StaleChargeAge {
		logger.Fatal("older-than is below CREDITS_STALE_CHARGE_AGE and could refund in-flight charges",
			zap.Duration("older_than", *olderThan),
			zap.Duration("stale_charge_age", cfg.Credits.StaleChargeAge),
		)
	}

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db, logger)

	svc := credit.NewService(repository.NewLedgerRepository(db), &cfg.Credits, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	n, err := svc.ReconcileStale(ctx, *olderThan)
	if err != nil {
		logger.Error("reconcile failed", zap.Int("refunded", n), zap.Error(err))
		return
	}
	logger.Info("reconcile finished", zap.Int("refunded", n))
}
