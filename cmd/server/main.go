package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/retail-pos-backend/internal/config"
	"github.com/iliyamo/retail-pos-backend/internal/database"
	"github.com/iliyamo/retail-pos-backend/internal/handler"
	"github.com/iliyamo/retail-pos-backend/internal/middleware"
	"github.com/iliyamo/retail-pos-backend/internal/queue"
	"github.com/iliyamo/retail-pos-backend/internal/repository"
	"github.com/iliyamo/retail-pos-backend/internal/router"
	"github.com/iliyamo/retail-pos-backend/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if cfg.DropDBOnRun {
		log.Println("DROP_DB_ON_RUN=1: truncating all tables")
		if err := database.Migrate(bootCtx, db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		if err := database.Truncate(bootCtx, db); err != nil {
			log.Fatalf("truncate failed: %v", err)
		}
	} else if err := database.Migrate(bootCtx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := database.Seed(bootCtx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	// Redis is optional; cache and rate limiting degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	issuer := utils.TokenIssuer{
		Secret:         cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		Audience:       cfg.JWTAudience,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
	}

	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	var publish handler.EventPublisher
	if cfg.RabbitURL != "" {
		rabbitURL := cfg.RabbitURL
		publish = func(ctx context.Context, event queue.SaleCompletedEvent) error {
			return queue.PublishSaleCompleted(ctx, rabbitURL, event)
		}
		go queue.StartSaleConsumer(rabbitURL)
	}

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(issuer, userRepo, cfg.BcryptCost),
		Categories: handler.NewCategoryHandler(categoryRepo),
		Products:   handler.NewProductHandler(productRepo),
		Sales:      handler.NewSaleHandler(saleRepo, productRepo, publish),
		Supply:     handler.NewSupplyHandler(saleRepo),
		Users:      handler.NewUserHandler(userRepo, cfg.BcryptCost),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = router.NewValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.Register(e, cfg, handlers, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
