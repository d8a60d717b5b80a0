package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/container"
	pginfra "github.com/oksasatya/go-devconnector/internal/infrastructure/postgres"
	"github.com/oksasatya/go-devconnector/internal/router"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	name := flag.String("name", "Demo User", "account name")
	email := flag.String("email", "demo@devconnector.local", "account email")
	password := flag.String("password", "password123", "account password")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if cfg.StoreDriver != config.StorePostgres {
		log.Fatal("seed needs STORE_DRIVER=postgres")
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	jwtManager, err := helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("jwt: %v", err)
	}
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetJWT(jwtManager)
	container.SetHasher(helpers.NewPasswordHasher(cfg.BcryptCost))

	svc := router.BuildAccountService(router.NewAccountRepository())
	res, err := svc.Register(ctx, application.RegisterInput{Name: *name, Email: *email, Password: *password})
	switch {
	case errors.Is(err, application.ErrAlreadyExists):
		logger.WithField("email", *email).Info("demo account already exists")
	case err != nil:
		logger.Fatalf("failed to seed account: %v", err)
	default:
		logger.WithFields(logrus.Fields{"account_id": res.AccountID, "email": *email}).Info("seeded demo account")
	}
}
