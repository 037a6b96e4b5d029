// @title        Store Rating API
// @version      1.0
// @description  Role-based store rating service: accounts, dashboards and store ratings.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/storerating/store-rating/docs"
	"github.com/storerating/store-rating/internal/api"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
	"github.com/storerating/store-rating/internal/core/service"
	mongodb "github.com/storerating/store-rating/internal/infrastructure/db/mongo"
	redisdb "github.com/storerating/store-rating/internal/infrastructure/db/redis"
	"github.com/storerating/store-rating/internal/infrastructure/db/sqlstore"
	"github.com/storerating/store-rating/internal/infrastructure/http/handlers"
	"github.com/storerating/store-rating/internal/infrastructure/queue"
	"github.com/storerating/store-rating/internal/pkg/config"
	"github.com/storerating/store-rating/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "store-rating-api",
	})

	if err := run(ctx, cfg); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Relational store ---
	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlstore.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			return err
		}
		log.Info().Msg("database schema migrated")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	checks := map[string]handlers.Check{"database": handlers.SQLCheck(sqlDB)}

	// --- Audit trail (optional) ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var events ports.RatingEventPublisher = queue.Discard{}
	var dispatcher *queue.Dispatcher
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, mongodb.NewAuditRepository(mdb), log)
		dispatcher.Start(workerCtx)
		events = dispatcher
		checks["mongo"] = handlers.MongoCheck(client)
		log.Info().Str("database", mdb.Name()).Msg("rating audit enabled")
	} else {
		log.Info().Msg("MONGO_URI not set, rating audit disabled")
	}

	// --- Idempotency store (optional) ---
	var idempotency ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idempotency = redisdb.NewIdempotencyStore(rdb)
		checks["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys disabled")
	}

	// --- Repositories ---
	users := sqlstore.NewAccountRepository[domain.User](db, domain.ErrUserNotFound)
	admins := sqlstore.NewAccountRepository[domain.Admin](db, domain.ErrAdminNotFound)
	storeOwners := sqlstore.NewAccountRepository[domain.StoreOwner](db, domain.ErrStoreOwnerNotFound)
	ratings := sqlstore.NewRatingRepository(db)

	// --- Services ---
	passwords := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	svc := api.Services{
		Auth: service.NewAuthService(users, admins, storeOwners, passwords, service.AuthConfig{
			JWTSecret: cfg.Auth.JWTSecret,
			TokenTTL:  cfg.Auth.TokenTTL,
			Bootstrap: service.BootstrapAdmin{
				Email:    cfg.Auth.SuperAdminEmail,
				Password: cfg.Auth.SuperAdminPassword,
			},
		}, log),
		Accounts:   service.NewAccountService(users, admins, storeOwners, ratings, passwords, log),
		Dashboards: service.NewDashboardService(users, admins, storeOwners, ratings, ratings),
		Ratings:    service.NewRatingService(ratings, users, idempotency, events, cfg.Redis.IdempotencyTTL, log),
		Stores:     ratings,
	}

	e := api.NewRouter(svc, api.Options{
		JWTSecret:        cfg.Auth.JWTSecret,
		RequestTimeout:   cfg.RequestTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Checks:           checks,
	}, log)

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Stop accepting audit events only after in-flight requests have published.
	cancelWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	log.Info().Msg("server stopped cleanly")
	return nil
}
