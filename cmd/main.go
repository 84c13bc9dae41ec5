package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tavo0132/nexo-backend-api/config"
	"github.com/tavo0132/nexo-backend-api/db"
	accounthandler "github.com/tavo0132/nexo-backend-api/internal/account/handler"
	accountrepo "github.com/tavo0132/nexo-backend-api/internal/account/repository/postgres"
	accountservice "github.com/tavo0132/nexo-backend-api/internal/account/service"
	authhandler "github.com/tavo0132/nexo-backend-api/internal/auth/handler"
	"github.com/tavo0132/nexo-backend-api/internal/auth/middleware"
	authservice "github.com/tavo0132/nexo-backend-api/internal/auth/service"
	friendshiphandler "github.com/tavo0132/nexo-backend-api/internal/friendship/handler"
	friendshiprepo "github.com/tavo0132/nexo-backend-api/internal/friendship/repository/postgres"
	friendshipservice "github.com/tavo0132/nexo-backend-api/internal/friendship/service"
	"github.com/tavo0132/nexo-backend-api/internal/storage"
	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	clk := clock.System{}

	files, err := newFileStorage(ctx, cfg, clk)
	if err != nil {
		log.Fatalf("file storage setup failed: %v", err)
	}

	accountRepo := accountrepo.NewRepository(pool)
	friendshipRepo := friendshiprepo.NewRepository(pool)

	hasher := authservice.NewArgon2Hasher()
	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.JWTExpiryMin, clk)
	authService := authservice.NewAuthService(accountRepo, hasher, tokenService, clk, cfg.LoginMaxAttempts)
	accountService := accountservice.NewService(accountRepo, authService, files, clk, cfg.MaxAvatarBytes())
	friendshipService := friendshipservice.NewService(friendshipRepo, accountRepo, clk)

	gate := middleware.New(tokenService, accountRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxAvatarBytes()) + 1024*1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Slow down credential stuffing independently of the per-account lockout.
	app.Use("/auth/login", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))

	authhandler.RegisterRoutes(app, authhandler.NewAuthHandler(authService))
	accounthandler.RegisterRoutes(app, accounthandler.NewUserHandler(accountService, cfg.MaxAvatarBytes()), gate)
	friendshiphandler.RegisterRoutes(app, friendshiphandler.NewFriendshipHandler(friendshipService), gate)

	if cfg.StorageDriver == "local" {
		app.Static("/uploads", cfg.UploadRoot)
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}

func newFileStorage(ctx context.Context, cfg *config.Config, clk clock.Clock) (storage.FileStorage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, clk)
	}
	return storage.NewLocal(cfg.UploadRoot, clk), nil
}
