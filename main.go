package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/rewearth/rewearth/rewearth"
	"github.com/rewearth/rewearth/rewearth/database"
	"github.com/rewearth/rewearth/rewearth/database/repositories"
	"github.com/rewearth/rewearth/rewearth/ecodata"
	"github.com/rewearth/rewearth/rewearth/logger"
	"github.com/rewearth/rewearth/rewearth/services"
	"github.com/rewearth/rewearth/web/handlers"
	"github.com/rewearth/rewearth/web/middleware"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	slog.SetDefault(slog.New(logger.NewHandler("ReWearth", slog.LevelInfo)))

	cfg, err := rewearth.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.NewHandler("ReWearth", cfg.Log.Level)))

	slog.Info("Starting ReWearth backend",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect both databases concurrently. A failure degrades instead of
	// aborting: the process still serves, and storage-backed routes
	// answer 503 until the next restart.
	var (
		db          *database.DB
		mongoClient *mongo.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := database.New(gctx, database.Config{
			Host:         cfg.DB.Host,
			Port:         cfg.DB.Port,
			User:         cfg.DB.User,
			Password:     cfg.DB.Password,
			Database:     cfg.DB.Database,
			PoolSize:     cfg.DB.PoolSize,
			MaxIdleConns: cfg.DB.MaxIdleConns,
			MaxLifetime:  cfg.DB.MaxLifetime,
		})
		if err != nil {
			slog.Error("PostgreSQL unavailable, serving degraded",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
			return nil
		}
		if err := d.InitializeSchema(gctx); err != nil {
			slog.Error("Schema initialization failed, serving degraded",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
			d.Close()
			return nil
		}
		db = d
		return nil
	})
	g.Go(func() error {
		client, err := mongo.Connect(gctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err == nil {
			err = client.Ping(gctx, nil)
		}
		if err != nil {
			slog.Error("MongoDB unavailable, eco-data routes degraded",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
			return nil
		}
		mongoClient = client
		return nil
	})
	_ = g.Wait()

	webApp := &handlers.WebApp{Config: cfg}

	var eco *ecodata.Service
	if mongoClient != nil {
		slog.Info("MongoDB connected", slog.String("type", "db"))
		eco = ecodata.NewService(ecodata.NewMongoSource(mongoClient, cfg.Mongo.Database, cfg.Mongo.Collection))
		if err := eco.LoadIndex(ctx); err != nil {
			slog.Warn("Eco-data suggestions disabled",
				slog.String("type", "db"),
				slog.String("error", err.Error()))
		}
		webApp.Eco = eco

		defer func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer disconnectCancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()
	}

	if db != nil {
		slog.Info("PostgreSQL connected", slog.String("type", "db"))
		userRepo := repositories.NewUserRepository(db.BunDB())
		itemRepo := repositories.NewItemRepository(db.BunDB())
		swapRepo := repositories.NewSwapRepository(db.BunDB())

		webApp.Accounts = services.NewAccountService(userRepo, cfg.Swap.StartingCredits)
		webApp.Wardrobe = services.NewWardrobeService(userRepo, itemRepo, eco)
		webApp.Swaps = services.NewSwapService(userRepo, itemRepo, swapRepo, cfg.Swap.PlatformFee)
		defer db.Close()
	}

	app := fiber.New(fiber.Config{
		AppName:      "ReWearth Backend API",
		ServerHeader: "ReWearth",
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New())
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(
		cfg.Server.RateLimit,
		time.Duration(cfg.Server.RateWindowSec)*time.Second,
	)))

	webApp.RegisterRoutes(app)

	address := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting HTTP server", slog.String("address", address))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-quit
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	slog.Info("Shutdown complete")
}
