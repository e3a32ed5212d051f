package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/config"
	"github.com/purav-khanna/Fitness-Tracker/internal/db"
	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/metrics"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/backup"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dashboard"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	trackermcp "github.com/purav-khanna/Fitness-Tracker/internal/tracker/mcp"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/settings"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Backends holds the connections the store and the rate limiter use.
// A nil field means that backend is not in use.
type Backends struct {
	RedisClient *redis.Client
	DBPool      *pgxpool.Pool
}

type ConnectBackendsParams struct {
	Config         *config.Config
	RedisPassword  string
	DBUser         string
	DBPassword     string
	TracingEnabled bool
}

// ConnectBackends opens redis when a host is configured and postgres when it is the
// storage backend. Redis is optional unless it holds the data: when it cannot be
// reached it is left out and the features that need it are disabled.
func ConnectBackends(ctx context.Context, params ConnectBackendsParams) (_ *Backends, err error) {
	cfg := params.Config
	backends := &Backends{}
	defer func() {
		if err != nil {
			if closeErr := backends.Close(); closeErr != nil {
				log.Errorf("close backends: %s", closeErr)
			}
		}
	}()

	redisRequired := cfg.StorageBackend == config.StorageBackendRedis
	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.TracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		rdbStatus := rdb.Ping(pingCtx)
		cancel()
		switch {
		case rdbStatus.Err() == nil:
			log.Debugf("redis ping: %s", rdbStatus.Val())
			backends.RedisClient = rdb
		case redisRequired:
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", rdbStatus.Err())
		default:
			log.Warnf("redis not reachable, import rate limiting disabled: %s", rdbStatus.Err())
			_ = rdb.Close()
		}
	} else if redisRequired {
		return nil, errors.New("redis storage backend without redis host")
	}

	if cfg.StorageBackend == config.StorageBackendPostgres {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         params.DBUser,
			DBPassword:     params.DBPassword,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		backends.DBPool = dbPool
	}

	return backends, nil
}

// Close releases every open connection.
func (b *Backends) Close() error {
	var err error
	if b.RedisClient != nil {
		err = multierr.Append(err, b.RedisClient.Close())
		b.RedisClient = nil
	}
	if b.DBPool != nil {
		log.Debugln("closing db pool ...")
		b.DBPool.Close() // blocking operation
		b.DBPool = nil
	}
	return err
}

// NewStore builds the configured store backend, wrapped in a freecache layer when
// a cache size is set.
func NewStore(ctx context.Context, cfg *config.Config, backends *Backends) (storage.Store, error) {
	var store storage.Store
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		store = storage.NewMemoryStore()
	case config.StorageBackendDisk:
		diskStore, err := storage.NewDiskStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("new disk store: %w", err)
		}
		store = diskStore
	case config.StorageBackendRedis:
		if backends == nil || backends.RedisClient == nil {
			return nil, errors.New("redis store: no redis client")
		}
		store = storage.NewRedisStore(backends.RedisClient, cfg.RedisKeyPrefix)
	case config.StorageBackendPostgres:
		if backends == nil || backends.DBPool == nil {
			return nil, errors.New("postgres store: no db pool")
		}
		psqlStore := storage.NewPsqlStore(backends.DBPool)
		if err := psqlStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		store = psqlStore
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}

	log.Infof("using [%s] storage", cfg.StorageBackend)

	if cfg.StorageCacheSizeMB > 0 && cfg.StorageBackend != config.StorageBackendMemory {
		log.Debugf("storage cache enabled: %d MB, ttl %s", cfg.StorageCacheSizeMB, cfg.StorageCacheTTLDuration())
		return storage.NewCachedStore(store, cfg.StorageCacheSizeMB, cfg.StorageCacheTTLDuration()), nil
	}
	return store, nil
}

// Tracker wires the domain services over one store.
type Tracker struct {
	ProfileRepo  *profile.Repo
	Profile      *profile.Service
	Settings     *settings.Service
	Workouts     *workouts.Service
	Goals        *goals.Service
	Achievements *achievements.Service
	Dashboard    *dashboard.Service
	Backup       *backup.Service
	MCP          *trackermcp.ContextService
}

type NewTrackerParams struct {
	Store          storage.Store
	MetricsManager *metrics.Manager
	// Location defaults to time.Local, Now to time.Now.
	Location *time.Location
	Now      func() time.Time
}

func NewTracker(params NewTrackerParams) *Tracker {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}

	profileRepo := profile.NewRepo(params.Store)
	t := &Tracker{
		ProfileRepo:  profileRepo,
		Profile:      profile.NewService(profileRepo),
		Settings:     settings.NewService(params.Store),
		Workouts:     workouts.NewService(workouts.NewRepo(params.Store), now),
		Goals:        goals.NewService(goals.NewRepo(params.Store), now, loc),
		Achievements: achievements.NewService(params.Store, params.MetricsManager),
	}
	t.Dashboard = dashboard.NewService(dashboard.NewServiceParams{
		Workouts:     t.Workouts,
		Goals:        t.Goals,
		Profile:      t.Profile,
		Achievements: t.Achievements,
		Now:          now,
		Location:     loc,
	})
	t.Backup = backup.NewService(backup.NewServiceParams{
		Profile:        profileRepo,
		Workouts:       t.Workouts,
		Goals:          t.Goals,
		Achievements:   t.Achievements,
		Evaluator:      t.Dashboard,
		MetricsManager: params.MetricsManager,
	})
	t.MCP = trackermcp.NewContextService(trackermcp.ContextServiceParams{
		Dashboard:    t.Dashboard,
		Workouts:     t.Workouts,
		Goals:        t.Goals,
		Profile:      t.Profile,
		Achievements: t.Achievements,
	})
	return t
}
