package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/config"
	"github.com/purav-khanna/Fitness-Tracker/internal/middleware"
	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/metrics"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/backup"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dashboard"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	trackermcp "github.com/purav-khanna/Fitness-Tracker/internal/tracker/mcp"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/settings"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config   *config.Config
	backends *Backends
	store    storage.Store
	tracker  *Tracker
	watcher  *backup.Watcher

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	DBUser                  string
	DBPassword              string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitness-tracker")
	if err != nil {
		return nil, err
	}

	backends, err := ConnectBackends(ctx, ConnectBackendsParams{
		Config:         cfg,
		RedisPassword:  params.RedisPassword,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("connect backends: %w", err)
	}

	store, err := NewStore(ctx, cfg, backends)
	if err != nil {
		otelShutdown()
		return nil, multierr.Append(fmt.Errorf("new store: %w", err), backends.Close())
	}

	var extraCollectors []prometheus.Collector
	if backends.DBPool != nil {
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			backends.DBPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}
	if cachedStore, ok := store.(*storage.CachedStore); ok {
		extraCollectors = append(extraCollectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "fitness",
			Subsystem: "storage",
			Name:      "cache_hit_rate",
			Help:      "Hit rate of the storage read cache",
		}, cachedStore.HitRate))
	}
	promRegistry := metrics.SetupPrometheus(extraCollectors...)
	metricsManager := metrics.NewManager("fitness", "tracker", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	return &Server{
		config:   cfg,
		backends: backends,
		store:    store,
		tracker: NewTracker(NewTrackerParams{
			Store:          store,
			MetricsManager: metricsManager,
			Location:       loc,
		}),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("tracker-router"))

	profileHandler := profile.NewHandler(s.tracker.Profile)
	r.HandleFunc("/profile", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", profileHandler.HandleSave).Methods("PUT", "OPTIONS").Name("save-profile")
	r.HandleFunc("/onboarding", profileHandler.HandleOnboardingStatus).Methods("GET", "OPTIONS").Name("onboarding-status")
	r.HandleFunc("/onboarding", profileHandler.HandleCompleteOnboarding).Methods("POST", "OPTIONS").Name("complete-onboarding")
	r.HandleFunc("/onboarding/skip", profileHandler.HandleSkipOnboarding).Methods("POST", "OPTIONS").Name("skip-onboarding")

	settingsHandler := settings.NewHandler(s.tracker.Settings)
	r.HandleFunc("/settings/theme", settingsHandler.HandleGetTheme).Methods("GET", "OPTIONS").Name("get-theme")
	r.HandleFunc("/settings/theme", settingsHandler.HandleSetTheme).Methods("PUT", "OPTIONS").Name("set-theme")
	r.HandleFunc("/settings/theme/toggle", settingsHandler.HandleToggleTheme).Methods("POST", "OPTIONS").Name("toggle-theme")

	workoutsHandler := workouts.NewHandler(s.tracker.Workouts, s.tracker.Dashboard, s.metricsManager)
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")

	goalsHandler := goals.NewHandler(s.tracker.Goals, s.tracker.Dashboard, s.metricsManager)
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals", goalsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals/{id}/progress", goalsHandler.HandleUpdateProgress).Methods("PUT", "OPTIONS").Name("update-goal-progress")
	r.HandleFunc("/goals/{id}/complete", goalsHandler.HandleComplete).Methods("POST", "OPTIONS").Name("complete-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-goal")

	achievementsHandler := achievements.NewHandler(s.tracker.Achievements)
	r.HandleFunc("/achievements", achievementsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-achievements")

	dashboardHandler := dashboard.NewHandler(s.tracker.Dashboard)
	r.HandleFunc("/dashboard", dashboardHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")

	backupHandler := backup.NewHandler(s.tracker.Backup)
	r.HandleFunc("/backup/export", backupHandler.HandleExport).Methods("GET", "OPTIONS").Name("export-backup")
	var importHandler http.Handler = http.HandlerFunc(backupHandler.HandleImport)
	if s.backends.RedisClient != nil {
		importHandler = middleware.RateLimit(
			redis_rate.NewLimiter(s.backends.RedisClient),
			"backup-import",
			s.config.ImportRateLimitAllowedPerMin,
			s.metricsManager,
		)(importHandler)
	}
	r.Handle("/backup/import", importHandler).Methods("POST", "OPTIONS").Name("import-backup")

	mcpServer := trackermcp.NewServer(s.tracker.MCP)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp")).Name("mcp")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.startBackupWatcher(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) startBackupWatcher(ctx context.Context) {
	if s.config.BackupWatchDir == "" {
		log.Debugln("backup watch dir not set, watcher disabled")
		return
	}

	watcher, err := backup.NewWatcher(s.config.BackupWatchDir, s.tracker.Backup)
	if err != nil {
		log.Errorf("failed to start backup watcher: %s", err)
		return
	}
	watcher.Start(ctx)
	s.watcher = watcher
	log.Infof("watching [%s] for backups to import", s.config.BackupWatchDir)
}

// GracefulShutdown stops the listeners, then releases the watcher and backends.
// Every step runs even when an earlier one fails; the errors are combined.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.watcher != nil {
		if closeErr := s.watcher.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close backup watcher: %w", closeErr))
		}
	}

	if closeErr := s.backends.Close(); closeErr != nil {
		err = multierr.Append(err, fmt.Errorf("close backends: %w", closeErr))
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
