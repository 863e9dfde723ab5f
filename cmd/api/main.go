package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"leander-social/internal/config"
	"leander-social/internal/domain"
	"leander-social/internal/handler"
	"leander-social/internal/middleware"
	"leander-social/internal/pkg/i18n"
	"leander-social/internal/realtime"
	"leander-social/internal/repository"
	"leander-social/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:           "leander-api",
		Short:         "Leander social network backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	root.AddCommand(serve, newMigrateCmd(), newPromoteCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := config.NewLogger(cfg)

			db, err := config.NewPostgresDB(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			return repository.Migrate(cmd.Context(), db, log)
		},
	}
}

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant ROLE_ADMIN to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := config.NewLogger(cfg)

			db, err := config.NewPostgresDB(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			users := repository.NewUserRepository(db)
			user, err := users.GetByEmail(cmd.Context(), strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			if user == nil {
				return domain.ErrUserNotFound
			}

			if err := users.UpdateRole(cmd.Context(), user.ID, string(domain.RoleAdmin)); err != nil {
				return err
			}
			log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("user promoted to admin")
			return nil
		},
	}
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := config.NewLogger(cfg)

	if err := i18n.Load(); err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; cache disabled and realtime fan-out limited to this process")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("minio unavailable; uploads will fail")
		minioClient = nil
	}

	registry := realtime.NewRegistry(log)
	defer registry.Close()
	publisher := newPublisher(ctx, redisClient, registry, cfg, log)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, publisher, cfg, log)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(log),
		BodyLimit:    int(cfg.MaxUploadSize),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services, registry, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	registry.Close()
	return app.ShutdownWithTimeout(10 * time.Second)
}

// newPublisher fans out through Redis when it is available so that every
// instance reaches its own sessions; otherwise delivery stays in-process.
func newPublisher(ctx context.Context, client *redis.Client, registry *realtime.Registry, cfg *config.Config, log zerolog.Logger) realtime.Publisher {
	if client == nil {
		return realtime.NewLocalBus(registry)
	}

	bus := realtime.NewRedisBus(client, cfg.RealtimeChannel, registry, log)
	go func() {
		if err := bus.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("realtime subscriber stopped")
		}
	}()
	return bus
}
