package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/container"
	pginfra "github.com/oksasatya/go-devconnector/internal/infrastructure/postgres"
	"github.com/oksasatya/go-devconnector/internal/infrastructure/search"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/internal/router"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	if cfg.StoreDriver == config.StorePostgres {
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
	} else {
		logger.Warn("using in-memory account store; data is lost on restart")
	}

	// Redis account cache (optional)
	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		helpers.LogError(logger, "redis unavailable; account cache disabled", err, nil)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	// RabbitMQ welcome mail publisher (optional)
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; welcome mails disabled", err, nil)
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Elasticsearch account index (optional)
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		helpers.LogError(logger, "elasticsearch unavailable; account search disabled", err, nil)
	}
	if err := search.NewAccountIndex(es, cfg.ESAccountsIndex).EnsureIndex(ctx); err != nil {
		helpers.LogError(logger, "elasticsearch index setup failed", err, logrus.Fields{"index": cfg.ESAccountsIndex})
	}
	container.SetES(es)

	jwtManager, err := helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatalf("jwt: %v", err)
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)
	container.SetHasher(helpers.NewPasswordHasher(cfg.BcryptCost))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins(),
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.LegacyTokenHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.RequestLogger(logger))
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
