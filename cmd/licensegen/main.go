// Command licensegen mints license keys and prints them one per line.
package main

import (
	"context"
	"flag"
	"fmt"
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
	n := flag.Int("n", 10, "number of keys to mint")
	credits := flag.Int("credits", 0, "credits per key (0 uses CREDITS_LICENSE_KEY)")
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

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db, logger)

	svc := credit.NewService(repository.NewLedgerRepository(db), &cfg.Credits, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	keys, err := svc.GenerateLicenseKeys(ctx, *n, *credits)
	if err != nil {
		logger.Fatal("failed to mint license keys", zap.Error(err))
	}
	for _, k := range keys {
		fmt.Printf("%s\t%d\n", k.Key, k.Credits)
	}
	logger.Info("license keys minted", zap.Int("count", len(keys)))
}
