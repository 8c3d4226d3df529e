package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apihandler "debatetab/internal/api/handler"
	apiservice "debatetab/internal/api/service"
	breakservice "debatetab/internal/breaks/service"
	breakstore "debatetab/internal/breaks/store"
	drawstore "debatetab/internal/draw/store"
	participantstore "debatetab/internal/participants/store"
	"debatetab/internal/platform/config"
	"debatetab/internal/platform/httpserver"
	platformkafka "debatetab/internal/platform/kafka"
	"debatetab/internal/platform/logger"
	"debatetab/internal/platform/metrics"
	"debatetab/internal/platform/middleware"
	"debatetab/internal/platform/postgres"
	redisclient "debatetab/internal/platform/redis"
	ratelimit "debatetab/internal/ratelimit/middleware"
	"debatetab/internal/ratelimit/store/bucket"
	registrationhandler "debatetab/internal/registration/handler"
	registrationservice "debatetab/internal/registration/service"
	registrationstore "debatetab/internal/registration/store"
	resultstore "debatetab/internal/results/store"
	"debatetab/internal/tournaments/preferences"
	tournamentstore "debatetab/internal/tournaments/store"
	venuehandler "debatetab/internal/venues/handler"
	venuemetrics "debatetab/internal/venues/metrics"
	venueservice "debatetab/internal/venues/service"
	venuestore "debatetab/internal/venues/store"
	"debatetab/pkg/domain"
	"debatetab/pkg/platform/actionlog"
	actionlogkafka "debatetab/pkg/platform/actionlog/kafka"
	"debatetab/pkg/platform/actionlog/publisher"
	actionlogmemory "debatetab/pkg/platform/actionlog/store/memory"
	actionlogpostgres "debatetab/pkg/platform/actionlog/store/postgres"
	"debatetab/pkg/platform/middleware/admin"
	"debatetab/pkg/platform/middleware/metadata"
	"debatetab/pkg/platform/middleware/requesttime"
	"debatetab/pkg/platform/middleware/version"
	txcontext "debatetab/pkg/platform/tx"
)

const actionLogBuffer = 1024

// Each store set satisfies every service that reads the same tables.
type (
	tournamentStore interface {
		venueservice.TournamentStore
		registrationservice.TournamentStore
		apiservice.TournamentStore
		breakservice.TournamentStore
		preferences.Source
	}
	participantStore interface {
		venueservice.ParticipantStore
		registrationservice.ParticipantStore
		apiservice.ParticipantStore
	}
	debateStore interface {
		venueservice.DebateStore
		apiservice.DebateStore
	}
)

type stores struct {
	tournaments  tournamentStore
	participants participantStore
	debates      debateStore
	venues       venueservice.Store
	registration registrationservice.Store
	breaks       breakservice.Store
	ballots      apiservice.BallotStore
	actionLog    actionlog.Store
	tx           txcontext.Transactor
}

func memoryStores() stores {
	return stores{
		tournaments:  tournamentstore.NewInMemoryStore(),
		participants: participantstore.NewInMemoryStore(),
		debates:      drawstore.NewInMemoryStore(),
		venues:       venuestore.NewInMemoryStore(),
		registration: registrationstore.NewInMemoryStore(),
		breaks:       breakstore.NewInMemoryStore(),
		ballots:      resultstore.NewInMemoryStore(),
		actionLog:    actionlogmemory.NewInMemoryStore(),
		tx:           txcontext.NewLockTransactor(),
	}
}

func postgresStores(db *sql.DB) stores {
	return stores{
		tournaments:  tournamentstore.NewPostgres(db),
		participants: participantstore.NewPostgres(db),
		debates:      drawstore.NewPostgres(db),
		venues:       venuestore.NewPostgres(db),
		registration: registrationstore.NewPostgres(db),
		breaks:       breakstore.NewPostgres(db),
		ballots:      resultstore.NewPostgres(db),
		actionLog:    actionlogpostgres.New(db),
		tx:           txcontext.NewSQLTransactor(db),
	}
}

// main wires configuration, storage and the HTTP router, then serves until
// SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st := memoryStores()
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		st = postgresStores(db)
		log.Info("using postgres storage", "driver", cfg.Database.Driver)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var prefs *preferences.Cache
	if rdb != nil {
		defer rdb.Close()
		prefs = preferences.New(st.tournaments, rdb, preferences.WithTTL(cfg.PreferencesCacheTTL), preferences.WithLogger(log))
	} else {
		prefs = preferences.New(st.tournaments, nil, preferences.WithLogger(log))
	}

	actionSink := st.actionLog
	kcl, err := platformkafka.NewClient(cfg.Kafka)
	if err != nil {
		return err
	}
	if kcl != nil {
		defer kcl.Close()
		if err := platformkafka.EnsureTopic(ctx, kcl, cfg.Kafka); err != nil {
			log.Warn("failed to ensure action log topic", "topic", cfg.Kafka.ActionLogTopic, "error", err)
		}
		actionSink = actionlog.MultiStore{st.actionLog, actionlogkafka.NewSink(kcl, cfg.Kafka.ActionLogTopic)}
	}

	m := metrics.New()
	actions := publisher.NewPublisher(actionSink,
		publisher.WithAsyncBuffer(actionLogBuffer),
		publisher.WithLogger(log),
		publisher.WithMetrics(m),
	)
	defer actions.Close()

	a := &app{
		log:          log,
		stores:       st,
		prefs:        prefs,
		actions:      actions,
		metrics:      m,
		venueMetrics: venuemetrics.New(),
		redis:        rdb,
	}
	if rdb != nil {
		a.limiter = bucket.NewRedisStore(rdb)
	} else {
		mem := bucket.NewInMemoryStore()
		go sweep(ctx, mem, cfg.RateLimit.Window)
		a.limiter = mem
	}
	router := a.router(cfg)

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting debatetab", "addr", cfg.Server.Addr, "version", config.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// app holds the process-wide dependencies the router is built from.
type app struct {
	log          *slog.Logger
	stores       stores
	prefs        *preferences.Cache
	actions      *publisher.Publisher
	metrics      *metrics.Metrics
	venueMetrics *venuemetrics.Metrics
	limiter      ratelimit.Limiter
	redis        *redisclient.Client
}

func (a *app) router(cfg config.Config) http.Handler {
	st := a.stores
	venues := venueservice.New(st.venues, st.tournaments, st.debates, st.participants,
		venueservice.WithLogger(a.log),
		venueservice.WithActionLog(a.actions),
		venueservice.WithMetrics(a.venueMetrics),
		venueservice.WithTransactor(st.tx),
	)
	registration := registrationservice.New(st.registration, st.tournaments, a.prefs, st.participants,
		registrationservice.WithLogger(a.log),
		registrationservice.WithActionLog(a.actions),
		registrationservice.WithTransactor(st.tx),
	)
	breaks := breakservice.New(st.breaks, st.tournaments,
		breakservice.WithLogger(a.log),
		breakservice.WithActionLog(a.actions),
		breakservice.WithTransactor(st.tx),
	)
	api := apiservice.New(st.tournaments, a.prefs, st.participants, st.debates, st.ballots, breaks,
		apiservice.WithLogger(a.log),
		apiservice.WithActionLog(a.actions),
		apiservice.WithTransactor(st.tx),
		apiservice.WithRelease(apiservice.Release{
			TimeZone:    cfg.Server.TimeZone,
			Version:     config.Version,
			VersionName: config.VersionName,
		}),
	)

	venueHandler := venuehandler.New(venues, a.log)
	registrationHandler := registrationhandler.New(registration, a.log)
	apiHandler := apihandler.New(api, a.log)
	limits := ratelimit.New(a.limiter, cfg.RateLimit.Registrations, cfg.RateLimit.Window,
		ratelimit.WithLogger(a.log),
		ratelimit.WithMetrics(a.metrics),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(a.log))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(a.log))
	r.Use(middleware.LatencyMiddleware(a.metrics))
	r.Use(middleware.CheckOrigin(cfg.Server.TrustedOrigins, a.log))
	r.Use(admin.ResolveRole(cfg.Server.AdminToken))

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(limits.PerIP("registration"))
			registrationHandler.Register(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(limits.PerIP("coach"))
			registrationHandler.RegisterCoach(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdmin(a.log))
			venueHandler.Register(r)
			registrationHandler.RegisterAdmin(r)
		})

		r.Get("/api", apiHandler.HandleRoot)
		r.Route(domain.APIVersionV1.Path(), func(v1 chi.Router) {
			v1.Use(version.ExtractVersion(domain.APIVersionV1))
			apiHandler.Register(v1)
			v1.Group(func(r chi.Router) {
				r.Use(admin.RequireAdmin(a.log))
				apiHandler.RegisterAdmin(r)
			})
		})
	})
	return r
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	if a.redis != nil {
		if err := a.redis.Health(r.Context()); err != nil {
			a.log.WarnContext(r.Context(), "redis health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func sweep(ctx context.Context, store *bucket.InMemoryStore, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep()
		}
	}
}
