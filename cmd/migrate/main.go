// Command migrate applies or reverts the embedded SQL migrations.
package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-recovery/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-recovery/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "revert instead of apply")
	steps := flag.Int("steps", 0, "maximum migrations to run (0 = all; -down defaults to 1)")
	status := flag.Bool("status", false, "list pending migrations and exit")
	flag.Parse()

	// Load configuration
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

	if *status {
		pending, err := database.PendingMigrations(db)
		if err != nil {
			logger.Fatal("failed to plan migrations", zap.Error(err))
		}
		logger.Info("pending migrations", zap.Strings("migrations", pending))
		return
	}

	direction := migrate.Up
	limit := *steps
	if *down {
		direction = migrate.Down
		if limit == 0 {
			limit = 1
		}
	}

	if _, err := database.Migrate(db, direction, limit, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}
