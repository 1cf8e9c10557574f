package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
	basecache "github.com/riskibarqy/lol-match-history/internal/platform/cache"
)

// FeedRepository caches follow lists. Follows are written by another
// service, so entries only age out.
type FeedRepository struct {
	next  feed.Repository
	cache *basecache.Store[[]feed.Follow]
}

func NewFeedRepository(next feed.Repository, cache *basecache.Store[[]feed.Follow]) *FeedRepository {
	return &FeedRepository{next: next, cache: cache}
}

func (r *FeedRepository) ListByUser(ctx context.Context, userID int64) ([]feed.Follow, error) {
	key := "feed:follows:" + strconv.FormatInt(userID, 10)
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]feed.Follow, error) {
		items, err := r.next.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]feed.Follow(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]feed.Follow(nil), items...), nil
}
