package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/lol-match-history/external/riot"
	"github.com/riskibarqy/lol-match-history/internal/config"
	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
	cacherepo "github.com/riskibarqy/lol-match-history/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/lol-match-history/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lol-match-history/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/lol-match-history/internal/interfaces/httpapi"
	"github.com/riskibarqy/lol-match-history/internal/platform/cache"
	idgen "github.com/riskibarqy/lol-match-history/internal/platform/id"
	"github.com/riskibarqy/lol-match-history/internal/platform/lock"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/platform/resilience"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/usecase"
)

// App is the assembled HTTP service and the connections it owns.
type App struct {
	Server  *http.Server
	closers []func() error
}

// Close releases storage and lock connections in reverse opening order.
func (a *App) Close() error {
	var combined error
	for i := len(a.closers) - 1; i >= 0; i-- {
		combined = errors.CombineErrors(combined, a.closers[i]())
	}
	a.closers = nil
	return combined
}

type repositories struct {
	matches   match.Repository
	summoners match.SummonerRepository
	timelines timeline.Repository
	follows   feed.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	fail := func(err error) (*App, error) {
		_ = a.Close()
		return nil, err
	}

	var db *sqlx.DB
	if cfg.StorageBackend == config.StorageBackendPostgres {
		var err error
		db, err = openPostgres(ctx, cfg)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, db.Close)
	}

	repos := buildRepositories(cfg, db)

	locker, closeLocker, err := buildLocker(ctx, cfg, db)
	if err != nil {
		return fail(err)
	}
	if closeLocker != nil {
		a.closers = append(a.closers, closeLocker)
	}

	fetcher, err := buildRiotClient(cfg, logger)
	if err != nil {
		return fail(err)
	}

	decoder := schema.NewDecoder(logger.Named("schema"))
	importer := usecase.NewMatchImportService(decoder, repos.matches, repos.summoners, logger.Named("import"))
	fanout := usecase.NewMatchFanout(fetcher, importer, cfg.ImportMaxWorkers, logger.Named("fanout"))
	recent := usecase.NewRecentMatchesService(fetcher, decoder, repos.matches, fanout, logger.Named("recent"))
	feeds := usecase.NewFeedService(repos.follows, recent, locker, usecase.FeedConfig{
		LockNamespace:  cfg.FeedLockNamespace,
		PageSize:       cfg.FeedPageSize,
		MaxConcurrency: cfg.FeedMaxConcurrency,
		PollInterval:   cfg.FeedPollInterval,
	}, logger.Named("feed"))
	timelines := usecase.NewTimelineService(fetcher, decoder, repos.matches, importer, repos.timelines, logger.Named("timeline"))

	handler := httpapi.NewHandler(fanout, importer, recent, feeds, timelines, logger)
	router := httpapi.NewRouter(handler, logger, idgen.NewUUIDGenerator(), cfg.ServiceName, cfg.InternalJobToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app assembled",
		"storage_backend", cfg.StorageBackend,
		"lock_backend", cfg.LockBackend,
		"import_max_workers", cfg.ImportMaxWorkers,
		"follow_cache_ttl", cfg.FollowCacheTTL,
	)
	return a, nil
}

func buildRepositories(cfg config.Config, db *sqlx.DB) repositories {
	var repos repositories
	if db != nil {
		repos = repositories{
			matches:   postgres.NewMatchRepository(db),
			summoners: postgres.NewSummonerRepository(db),
			timelines: postgres.NewTimelineRepository(db),
			follows:   postgres.NewFeedRepository(db),
		}
	} else {
		repos = repositories{
			matches:   memory.NewMatchRepository(),
			summoners: memory.NewSummonerRepository(),
			timelines: memory.NewTimelineRepository(),
			follows:   memory.NewFeedRepository(nil),
		}
	}

	if cfg.FollowCacheTTL > 0 {
		repos.follows = cacherepo.NewFeedRepository(repos.follows, cache.NewStore[[]feed.Follow](cfg.FollowCacheTTL))
	}
	return repos
}

func buildLocker(ctx context.Context, cfg config.Config, db *sqlx.DB) (lock.Locker, func() error, error) {
	switch cfg.LockBackend {
	case config.LockBackendPostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("postgres lock backend requires postgres storage")
		}
		return lock.NewPostgresLocker(db), nil, nil
	case config.LockBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrapf(err, "ping redis addr=%s", cfg.RedisAddr)
		}
		return lock.NewRedisLocker(client, cfg.LockTTL, cfg.ServiceName+":lock"), client.Close, nil
	default:
		return lock.NewMemoryLocker(), nil, nil
	}
}

func buildRiotClient(cfg config.Config, logger *logging.Logger) (*riot.Client, error) {
	routes, err := riot.LoadRoutes(cfg.RiotRegionsFile)
	if err != nil {
		return nil, err
	}

	return riot.NewClient(riot.ClientConfig{
		BaseURL:            cfg.RiotBaseURL,
		Token:              cfg.RiotAPIToken,
		Timeout:            cfg.RiotTimeout,
		MaxThrottleRetries: cfg.RiotMaxThrottleRetries,
		Routes:             routes,
		Logger:             logger.Named("riot"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RiotCircuitEnabled,
			FailureThreshold: cfg.RiotCircuitFailureCount,
			OpenTimeout:      cfg.RiotCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RiotCircuitHalfOpenMaxReq,
		},
	}), nil
}
