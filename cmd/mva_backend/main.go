package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/minivenmo/mini_venmo_app/internal/adapters/database/pgsql"
	"github.com/minivenmo/mini_venmo_app/internal/adapters/memory"
	portsevt "github.com/minivenmo/mini_venmo_app/internal/core/ports/events"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/core/services"
	"github.com/minivenmo/mini_venmo_app/internal/events"
	"github.com/minivenmo/mini_venmo_app/internal/events/kafka"
	"github.com/minivenmo/mini_venmo_app/internal/handlers"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/minivenmo/mini_venmo_app/pkg/config"
	"github.com/minivenmo/mini_venmo_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Storage selection: pgx-backed repositories when PGSQL_URL is set,
	// otherwise the in-memory store.
	var (
		accountRepo portsrepo.AccountRepository
		ledgerRepo  portsrepo.LedgerRepository
		friendRepo  portsrepo.FriendshipRepository
	)
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		accountRepo = pgsql.NewAccountRepository(dbPool)
		ledgerRepo = pgsql.NewLedgerRepository(dbPool)
		friendRepo = pgsql.NewFriendshipRepository(dbPool)
	} else {
		logger.Info("PGSQL_URL not set, using in-memory store.")
		store := memory.NewStore()
		accountRepo = store
		ledgerRepo = store
		friendRepo = store
	}

	// Event publisher: Kafka when brokers are configured, no-op otherwise.
	var publisher portsevt.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing Kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Kafka event publisher enabled", slog.Int("brokers", len(cfg.KafkaBrokers)))
	} else {
		publisher = events.NoopPublisher{}
	}

	serviceContainer := &portssvc.ServiceContainer{
		Account: services.NewAccountService(accountRepo),
		Payment: services.NewPaymentService(accountRepo, ledgerRepo, publisher),
		Friend:  services.NewFriendService(accountRepo, friendRepo),
		Feed:    services.NewFeedService(accountRepo, ledgerRepo, friendRepo),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
