package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/hr-profile/internal/config"
	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
	"github.com/riskibarqy/hr-profile/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/hr-profile/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hr-profile/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hr-profile/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/hr-profile/internal/platform/id"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
	"github.com/riskibarqy/hr-profile/internal/platform/resilience"
	"github.com/riskibarqy/hr-profile/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewHTTPServer builds the API server. The returned cleanup releases the
// storage backend and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	tx, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ids := idgen.NewUUIDv7Generator()
	profileShowSvc := usecase.NewProfileShowService(tx, ids, logger)
	workExperienceSvc := usecase.NewWorkExperienceService(tx, ids, logger)
	bootstrapSvc := usecase.NewProfileShowBootstrapService(profileShowSvc, cfg.BootstrapWorkers, logger)

	anubisClient := anubis.NewClient(
		&http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		anubis.Options{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectURL,
			AdminKey:       cfg.AnubisAdminKey,
			CacheTTL:       cfg.AnubisCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(profileShowSvc, workExperienceSvc, bootstrapSvc, logger)
	router := httpapi.NewRouter(
		handler,
		anubisClient,
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (unitofwork.Manager, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		store.SeedUserInfo(memory.SeedUsers(cfg.MemorySeedUserIDs, time.Now())...)
		logger.Warn("using in-memory storage, data is lost on restart", "seeded_users", len(cfg.MemorySeedUserIDs))
		return store, func() error { return nil }, nil
	case config.StorageDriverPostgres, "":
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))
		return postgres.NewTxManager(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres",
		normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
