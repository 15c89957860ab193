package app

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/footypool/footypool/internal/config"
	"github.com/footypool/footypool/internal/infrastructure/repository/postgres"
	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// Scheduler bundles the wired daemon: the shared connection pool, the
// leadership gate, and the services driving fixture lifecycle.
type Scheduler struct {
	Config      config.Config
	Logger      *logging.Logger
	DB          *sqlx.DB
	Gate        *postgres.LeaderGate
	Lifecycle   *usecase.LifecycleService
	Correlation *usecase.CorrelationService
}

func NewScheduler(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres pool")
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrapf(err, "ping postgres %q", dbNameFromURL(cfg.DBURL))
	}

	fixtureRepo := postgres.NewFixtureRepository(db)
	gate := postgres.NewLeaderGate(db, cfg.LockNamespace, logger)

	lifecycle := usecase.NewLifecycleService(fixtureRepo, usecase.LifecycleConfig{
		Grace:              cfg.SchedulerGrace,
		DueTolerance:       cfg.SchedulerDueTolerance,
		Debounce:           cfg.SchedulerDebounce,
		SafetySweep:        cfg.SchedulerSafetySweep,
		NapCeiling:         cfg.SchedulerNapCeiling,
		FatalFailureStreak: cfg.SchedulerFatalFailureStreak,
	}, logger)
	correlation := usecase.NewCorrelationService(fixtureRepo, logger)

	logger.Info("scheduler wired",
		"db", dbNameFromURL(cfg.DBURL),
		"lock_namespace", cfg.LockNamespace,
	)

	return &Scheduler{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Gate:        gate,
		Lifecycle:   lifecycle,
		Correlation: correlation,
	}, nil
}

func (s *Scheduler) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
