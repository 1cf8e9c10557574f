package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
	"github.com/riskibarqy/lol-match-history/internal/infrastructure/repository/memory"
	feedmock "github.com/riskibarqy/lol-match-history/internal/mocks/domain/feed"
	"github.com/riskibarqy/lol-match-history/internal/platform/lock"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeedService_ConcurrentRefreshRunsOnce(t *testing.T) {
	t.Parallel()

	follows := feedmock.NewRepository(t)
	locker := lock.NewMemoryLocker()
	service := NewFeedService(follows, nil, locker, FeedConfig{}, logging.NewNop())

	entered := make(chan struct{})
	unblock := make(chan struct{})
	follows.
		On("ListByUser", mock.Anything, int64(42)).
		Run(func(mock.Arguments) {
			close(entered)
			<-unblock
		}).
		Return([]feed.Follow{}, nil).
		Once()

	var wg sync.WaitGroup
	var first FeedRefreshResult
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstErr = service.Refresh(context.Background(), 42)
	}()
	<-entered

	second, err := service.Refresh(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, second.Skipped)

	close(unblock)
	wg.Wait()
	require.NoError(t, firstErr)
	require.False(t, first.Skipped)

	held, err := locker.Held(context.Background(), lock.Key{Namespace: DefaultFeedLockNamespace, ID: 42})
	require.NoError(t, err)
	require.False(t, held)
}

func TestFeedService_ReleasesLockOnError(t *testing.T) {
	t.Parallel()

	follows := feedmock.NewRepository(t)
	locker := lock.NewMemoryLocker()
	service := NewFeedService(follows, nil, locker, FeedConfig{LockNamespace: 7}, logging.NewNop())

	dbErr := errors.New("db down")
	follows.On("ListByUser", mock.Anything, int64(9)).Return(nil, dbErr).Once()

	_, err := service.Refresh(context.Background(), 9)
	require.ErrorIs(t, err, dbErr)

	held, err := locker.Held(context.Background(), lock.Key{Namespace: 7, ID: 9})
	require.NoError(t, err)
	require.False(t, held)
}

func TestFeedService_RefreshImportsEveryFollow(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	shared := seedHistory(fetcher, "puuid-x", 3)
	fetcher.history["puuid-y"] = append([]string{}, shared...)
	recent, importer := newRecentService(fetcher)

	follows := memory.NewFeedRepository([]feed.Follow{
		{UserID: 1, PUUID: "puuid-x", Region: "na1"},
		{UserID: 1, PUUID: "puuid-y", Region: "na1"},
	})
	service := NewFeedService(follows, recent, lock.NewMemoryLocker(), FeedConfig{PageSize: 10}, logging.NewNop())

	result, err := service.Refresh(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, result.Follows)
	require.Equal(t, 3, result.Imported)
	require.Equal(t, 0, result.Failed)

	known, err := importer.matches.KnownExternalIDs(context.Background(), shared)
	require.NoError(t, err)
	require.Len(t, known, 3)
	for _, id := range shared {
		require.Equal(t, 1, fetcher.callsFor(id))
	}
}

func TestFeedService_WaitForRefresh(t *testing.T) {
	t.Parallel()

	locker := lock.NewMemoryLocker()
	service := NewFeedService(feedmock.NewRepository(t), nil, locker, FeedConfig{PollInterval: 5 * time.Millisecond}, logging.NewNop())
	key := lock.Key{Namespace: DefaultFeedLockNamespace, ID: 3}

	lease, ok, err := locker.TryAcquire(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)

	done := make(chan error, 1)
	go func() { done <- service.WaitForRefresh(context.Background(), 3) }()

	select {
	case err := <-done:
		t.Fatalf("wait returned while lock held: %v", err)
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, lease.Release(context.Background()))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("wait did not observe release")
	}

	ctx, cancel := context.WithCancel(context.Background())
	_, _, err = locker.TryAcquire(context.Background(), key)
	require.NoError(t, err)
	cancel()
	require.ErrorIs(t, service.WaitForRefresh(ctx, 3), context.Canceled)
}

func TestFeedService_RejectsInvalidUser(t *testing.T) {
	t.Parallel()

	service := NewFeedService(feedmock.NewRepository(t), nil, lock.NewMemoryLocker(), FeedConfig{}, logging.NewNop())
	_, err := service.Refresh(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
