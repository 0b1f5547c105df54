// Command devtoken provisions local test users and prints identity tokens for
// them, signed with JWT_SECRET. It refuses to run in production.
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
	"github.com/johnquangdev/meeting-recovery/pkg/config"
	"github.com/johnquangdev/meeting-recovery/pkg/jwt"
	pkglogger "github.com/johnquangdev/meeting-recovery/pkg/logger"
)

// Define test users
var testUsers = []struct {
	Subject string
	Email   string
	Name    string
}{
	{Subject: "dev-alice", Email: "alice@test.local", Name: "Alice"},
	{Subject: "dev-bob", Email: "bob@test.local", Name: "Bob"},
	{Subject: "dev-charlie", Email: "charlie@test.local", Name: "Charlie"},
}

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatalf("devtoken must not run in production")
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

	users := repository.NewUserRepository(db)
	verifier := jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Leeway)
	ctx := context.Background()

	for _, tu := range testUsers {
		u, err := users.EnsureByExternalID(ctx, tu.Subject, tu.Email, tu.Name, cfg.Credits.Initial)
		if err != nil {
			logger.Error("failed to provision user", zap.String("email", tu.Email), zap.Error(err))
			continue
		}

		token, err := verifier.Sign(jwt.Identity{Subject: tu.Subject, Email: tu.Email, Name: tu.Name}, *ttl)
		if err != nil {
			logger.Error("failed to sign token", zap.String("email", tu.Email), zap.Error(err))
			continue
		}

		fmt.Printf("%s <%s>\n", u.DisplayName, u.Email)
		fmt.Printf("User ID:  %s\n", u.ID)
		fmt.Printf("Credits:  %d\n", u.Credits)
		fmt.Printf("Token:    %s\n\n", token)
	}

	fmt.Printf("Use as: Authorization: Bearer <token> (expires in %s)\n", *ttl)
}
