package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRepository_ListByUser(t *testing.T) {
	repo := NewFeedRepository([]feed.Follow{
		{UserID: 1, PUUID: "a", Region: "na1"},
		{UserID: 2, PUUID: "b", Region: "kr"},
	})
	repo.Follow(feed.Follow{UserID: 1, PUUID: "c", Region: "euw1"})
	repo.Follow(feed.Follow{UserID: 1, PUUID: "a", Region: "na1"})

	got, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"a", "c"}, []string{got[0].PUUID, got[1].PUUID})

	got[0].PUUID = "mutated"
	again, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].PUUID)

	none, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}
