package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
)

type FeedRepository struct {
	mu     sync.RWMutex
	byUser map[int64][]feed.Follow
}

func NewFeedRepository(follows []feed.Follow) *FeedRepository {
	byUser := make(map[int64][]feed.Follow)
	for _, item := range follows {
		byUser[item.UserID] = append(byUser[item.UserID], item)
	}
	return &FeedRepository{byUser: byUser}
}

func (r *FeedRepository) ListByUser(_ context.Context, userID int64) ([]feed.Follow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	follows := r.byUser[userID]
	out := make([]feed.Follow, 0, len(follows))
	out = append(out, follows...)
	return out, nil
}

// Follow adds a follow unless the user already follows puuid.
func (r *FeedRepository) Follow(item feed.Follow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byUser[item.UserID] {
		if existing.PUUID == item.PUUID {
			return
		}
	}
	r.byUser[item.UserID] = append(r.byUser[item.UserID], item)
}
