package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/schema/schematest"
	"github.com/stretchr/testify/require"
)

func newRecentService(fetcher *fakeFetcher) (*RecentMatchesService, *MatchImportService) {
	importer, _, _ := newMemoryImporter()
	fanout := NewMatchFanout(fetcher, importer, 4, logging.NewNop())
	return NewRecentMatchesService(fetcher, schema.NewDecoder(logging.NewNop()), importer.matches, fanout, logging.NewNop()), importer
}

// seedHistory registers n matches for puuid, newest first.
func seedHistory(fetcher *fakeFetcher, puuid string, n int) []string {
	ids := make([]string, 0, n)
	for i := n; i >= 1; i-- {
		id := fmt.Sprintf("NA1_%d", 1000+i)
		ids = append(ids, id)
		fetcher.addMatch(schematest.Match(id))
	}
	fetcher.history[puuid] = ids
	return ids
}

func TestRecentMatchesService_PagesInHundreds(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	seedHistory(fetcher, "puuid-a", 150)
	service, _ := newRecentService(fetcher)

	result, err := service.ImportRecentMatches(context.Background(), RecentMatchesInput{
		PUUID: "puuid-a", Region: "NA1", Start: 0, End: 250,
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Pages)
	require.Equal(t, 150, result.Listed)
	require.Equal(t, 150, result.Imported)

	require.Len(t, fetcher.pageQueries, 2)
	require.Equal(t, MatchIDQuery{Start: 0, Count: 100}, fetcher.pageQueries[0])
	require.Equal(t, MatchIDQuery{Start: 100, Count: 100}, fetcher.pageQueries[1])
}

func TestRecentMatchesService_SkipsKnownAndStopsWhenAsked(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	ids := seedHistory(fetcher, "puuid-b", 30)
	service, importer := newRecentService(fetcher)

	// The older half is already stored.
	older := make([][]byte, 0, 15)
	for _, id := range ids[15:] {
		older = append(older, fetcher.matches[id])
	}
	_, err := importer.ImportMatches(context.Background(), older, "na1")
	require.NoError(t, err)

	result, err := service.ImportRecentMatches(context.Background(), RecentMatchesInput{
		PUUID: "puuid-b", Region: "na1", Start: 0, End: 10, StopOnKnown: true,
	})
	require.NoError(t, err)
	require.Equal(t, 10, result.Imported)
	require.Len(t, fetcher.pageQueries, 1)

	result, err = service.ImportRecentMatches(context.Background(), RecentMatchesInput{
		PUUID: "puuid-b", Region: "na1", Start: 10, End: 30, StopOnKnown: true,
	})
	require.NoError(t, err)
	require.Equal(t, 5, result.Imported)
	require.Equal(t, 15, result.Skipped)
	require.Equal(t, 1, fetcher.callsFor(ids[10]))
	require.Equal(t, 0, fetcher.callsFor(ids[29]))
}

func TestRecentMatchesService_WithoutStopImportsOnlyUnknown(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	ids := seedHistory(fetcher, "puuid-c", 6)
	service, importer := newRecentService(fetcher)
	_, err := importer.ImportMatches(context.Background(), [][]byte{fetcher.matches[ids[0]]}, "na1")
	require.NoError(t, err)

	result, err := service.ImportRecentMatches(context.Background(), RecentMatchesInput{
		PUUID: "puuid-c", Region: "na1", Start: 0, End: 20,
	})
	require.NoError(t, err)
	require.Equal(t, 5, result.Imported)
	require.Equal(t, 0, fetcher.callsFor(ids[0]))
}

func TestRecentMatchesService_SharedSeenSkipsClaimedIDs(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	ids := seedHistory(fetcher, "puuid-d", 4)
	fetcher.history["puuid-e"] = ids
	// Tutorial games are never stored, so only the shared set can
	// keep the second summoner from fetching them again.
	for _, id := range ids {
		payload := schematest.Match(id)
		payload.Info.GameMode = "TUTORIAL"
		fetcher.addMatch(payload)
	}
	service, _ := newRecentService(fetcher)
	seen := NewSeenMatches(16)

	first, err := service.ImportRecentMatches(context.Background(), RecentMatchesInput{
		PUUID: "puuid-d", Region: "na1", End: 20, Seen: seen,
	})
	require.NoError(t, err)
	second, err := service.ImportRecentMatches(context.Background(), RecentMatchesInput{
		PUUID: "puuid-e", Region: "na1", End: 20, Seen: seen,
	})
	require.NoError(t, err)

	require.Equal(t, 4, first.Scheduled)
	require.Equal(t, 0, second.Scheduled)
	for _, id := range ids {
		require.Equal(t, 1, fetcher.callsFor(id))
	}
}

func TestRecentMatchesService_RejectsEmptyWindow(t *testing.T) {
	t.Parallel()

	service, _ := newRecentService(newFakeFetcher())
	_, err := service.ImportRecentMatches(context.Background(), RecentMatchesInput{PUUID: "p", Start: 5, End: 5})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	_, err = service.ImportRecentMatches(context.Background(), RecentMatchesInput{End: 5})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
