package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
	"github.com/riskibarqy/lol-match-history/internal/platform/lock"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultFeedLockNamespace  int32 = 1001
	DefaultFeedPageSize             = 20
	DefaultFeedMaxConcurrency       = 4
	DefaultFeedPollInterval         = 500 * time.Millisecond
)

type FeedConfig struct {
	LockNamespace  int32
	PageSize       int
	MaxConcurrency int
	PollInterval   time.Duration
}

func normalizeFeedConfig(cfg FeedConfig) FeedConfig {
	if cfg.LockNamespace == 0 {
		cfg.LockNamespace = DefaultFeedLockNamespace
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultFeedPageSize
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultFeedMaxConcurrency
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultFeedPollInterval
	}
	return cfg
}

type FeedRefreshResult struct {
	UserID   int64 `json:"user_id"`
	Skipped  bool  `json:"skipped"`
	Follows  int   `json:"follows"`
	Imported int   `json:"imported"`
	Failed   int   `json:"failed"`
}

// FeedService refreshes the recent matches of every summoner a user
// follows, at most once at a time per user.
type FeedService struct {
	follows feed.Repository
	recent  *RecentMatchesService
	locker  lock.Locker
	cfg     FeedConfig
	logger  *logging.Logger
}

func NewFeedService(
	follows feed.Repository,
	recent *RecentMatchesService,
	locker lock.Locker,
	cfg FeedConfig,
	logger *logging.Logger,
) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedService{
		follows: follows,
		recent:  recent,
		locker:  locker,
		cfg:     normalizeFeedConfig(cfg),
		logger:  logger,
	}
}

func (s *FeedService) lockKey(userID int64) lock.Key {
	return lock.Key{Namespace: s.cfg.LockNamespace, ID: userID}
}

// Refresh imports new matches for the user's follows. When another refresh
// for the same user holds the lock it returns immediately with Skipped set.
func (s *FeedService) Refresh(ctx context.Context, userID int64) (FeedRefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Refresh", attribute.Int64("lol.user_id", userID))
	defer span.End()

	result := FeedRefreshResult{UserID: userID}
	if userID <= 0 {
		return result, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}

	lease, acquired, err := s.locker.TryAcquire(ctx, s.lockKey(userID))
	if err != nil {
		return result, fmt.Errorf("%w: acquire feed lock: %v", ErrDependencyUnavailable, err)
	}
	if !acquired {
		s.logger.WarnContext(ctx, "feed refresh already running, skipping", "user_id", userID)
		result.Skipped = true
		return result, nil
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.ErrorContext(ctx, "release feed lock failed", "user_id", userID, "error", err)
		}
	}()

	follows, err := s.follows.ListByUser(ctx, userID)
	if err != nil {
		recordSpanError(span, err)
		return result, fmt.Errorf("list follows: %w", err)
	}
	result.Follows = len(follows)
	if len(follows) == 0 {
		return result, nil
	}

	seen := NewSeenMatches(len(follows) * s.cfg.PageSize)
	var imported, failed atomic.Int32

	p := pool.New().WithMaxGoroutines(min(s.cfg.MaxConcurrency, len(follows)))
	for _, follow := range follows {
		p.Go(func() {
			res, err := s.recent.ImportRecentMatches(ctx, RecentMatchesInput{
				PUUID:       follow.PUUID,
				Region:      follow.Region,
				Start:       0,
				End:         s.cfg.PageSize,
				StopOnKnown: true,
				Seen:        seen,
			})
			imported.Add(int32(res.Imported))
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "refresh followed summoner failed",
					"user_id", userID,
					"puuid", follow.PUUID,
					"region", follow.Region,
					"error", err,
				)
			}
		})
	}
	p.Wait()

	result.Imported = int(imported.Load())
	result.Failed = int(failed.Load())
	s.logger.InfoContext(ctx, "feed refreshed",
		"user_id", userID,
		"follows", result.Follows,
		"imported", result.Imported,
		"failed", result.Failed,
	)
	return result, nil
}

// WaitForRefresh polls until no refresh holds the user's lock.
func (s *FeedService) WaitForRefresh(ctx context.Context, userID int64) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		held, err := s.locker.Held(ctx, s.lockKey(userID))
		if err != nil {
			return fmt.Errorf("%w: check feed lock: %v", ErrDependencyUnavailable, err)
		}
		if !held {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
