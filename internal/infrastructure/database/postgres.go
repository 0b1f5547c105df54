package database

import (
	"embed"
	"fmt"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-recovery/pkg/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationSource is shared by the server and cmd/migrate
var migrationSource = &migrate.EmbedFileSystemMigrationSource{
	FileSystem: migrationFiles,
	Root:       "migrations",
}

// NewPostgresDB creates a new PostgreSQL database connection using GORM
func NewPostgresDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get generic database object to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)
	return db, nil
}

// Migrate applies (or, with migrate.Down, reverts up to limit) the embedded migrations.
// A limit of 0 means all.
func Migrate(db *gorm.DB, direction migrate.MigrationDirection, limit int, log *zap.Logger) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate: %w", err)
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", migrationSource, direction, limit)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("migrations applied", zap.Int("count", n))
	return n, nil
}

// AutoMigrate runs every pending up migration
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	_, err := Migrate(db, migrate.Up, 0, log)
	return err
}

// PendingMigrations lists the embedded migrations not yet applied
func PendingMigrations(db *gorm.DB) ([]string, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	planned, _, err := migrate.PlanMigration(sqlDB, "postgres", migrationSource, migrate.Up, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to plan migrations: %w", err)
	}
	ids := make([]string, 0, len(planned))
	for _, m := range planned {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info("database connection closed")
	return nil
}
