package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/lol-match-history/internal/mocks/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/schema/schematest"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemoryImporter() (*MatchImportService, *memory.MatchRepository, *memory.SummonerRepository) {
	matches := memory.NewMatchRepository()
	summoners := memory.NewSummonerRepository()
	service := NewMatchImportService(schema.NewDecoder(logging.NewNop()), matches, summoners, logging.NewNop())
	return service, matches, summoners
}

func TestMatchImportService_ImportsScenarioAndIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, matches, summoners := newMemoryImporter()
	payload := schematest.Match("NA1_123")
	raw := schematest.MatchJSON(payload)

	summary, err := service.ImportMatches(ctx, [][]byte{raw}, "na1")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, []string{"NA1_123"}, summary.MatchIDs)
	require.Equal(t, 10, summary.NewSummoners)

	want := match.SaveResult{Matches: 1, Participants: 10, Stats: 10, Teams: 2, Bans: 10}
	if got := matches.Totals(); got != want {
		t.Fatalf("unexpected rows after first import: got=%+v want=%+v", got, want)
	}

	stored, ok, err := matches.GetByExternalID(ctx, "NA1_123")
	require.NoError(t, err)
	require.True(t, ok)
	if stored.GameDuration != 1500 {
		t.Fatalf("unexpected duration: %d", stored.GameDuration)
	}
	participants := matches.Participants("NA1_123")
	for i, p := range participants {
		if p.ParticipantIndex != i+1 {
			t.Fatalf("participant %d has index %d", i, p.ParticipantIndex)
		}
	}

	second, err := service.ImportMatches(ctx, [][]byte{raw}, "na1")
	require.NoError(t, err)
	require.Equal(t, 0, second.NewSummoners)
	if got := matches.Totals(); got != want {
		t.Fatalf("re-import changed row counts: got=%+v want=%+v", got, want)
	}
	if got := summoners.Count(); got != 10 {
		t.Fatalf("unexpected summoner count: %d", got)
	}
}

func TestMatchImportService_ReimportUpdatesOnlyVolatileFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, matches, _ := newMemoryImporter()

	original := schematest.Match("EUW1_77")
	_, err := service.ImportMatches(ctx, [][]byte{schematest.MatchJSON(original)}, "euw1")
	require.NoError(t, err)

	changed := schematest.Match("EUW1_77")
	changed.Info.GameDuration = 1620
	changed.Info.GameMode = "ARAM"
	changed.Info.Participants[0].ChampionID = 555
	changed.Info.Participants[0].PUUID = "someone-else"
	_, err = service.ImportMatches(ctx, [][]byte{schematest.MatchJSON(changed)}, "euw1")
	require.NoError(t, err)

	stored, _, err := matches.GetByExternalID(ctx, "EUW1_77")
	require.NoError(t, err)
	require.Equal(t, int64(1620), stored.GameDuration)
	require.Equal(t, "CLASSIC", stored.GameMode)

	first := matches.Participants("EUW1_77")[0]
	require.Equal(t, 555, first.ChampionID)
	require.Equal(t, "puuid-1", first.PUUID)
}

func TestMatchImportService_DedupesWithinBatch(t *testing.T) {
	t.Parallel()

	service, matches, _ := newMemoryImporter()
	raw := schematest.MatchJSON(schematest.Match("KR_1"))

	summary, err := service.ImportMatches(context.Background(), [][]byte{raw, raw, raw}, "kr")
	require.NoError(t, err)
	require.Equal(t, 2, summary.Duplicates)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, 1, matches.Totals().Matches)
}

func TestMatchImportService_SkipsTutorialAndZeroDuration(t *testing.T) {
	t.Parallel()

	tutorial := schematest.Match("NA1_200")
	tutorial.Info.GameMode = "TUTORIAL_MODULE_1"
	zero := schematest.Match("NA1_201")
	zero.Info.GameDuration = 0

	service, matches, summoners := newMemoryImporter()
	summary, err := service.ImportMatches(context.Background(), [][]byte{
		schematest.MatchJSON(tutorial),
		schematest.MatchJSON(zero),
	}, "na1")
	require.NoError(t, err)
	require.Equal(t, 2, summary.Skipped)
	require.Equal(t, 0, matches.Totals().Matches)
	require.Equal(t, 0, summoners.Count())
}

func TestMatchImportService_InvalidPayloadDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	missingID := schematest.Match("")
	service, matches, _ := newMemoryImporter()
	summary, err := service.ImportMatches(context.Background(), [][]byte{
		[]byte(`{"metadata":`),
		schematest.MatchJSON(missingID),
		schematest.MatchJSON(schematest.Match("NA1_300")),
	}, "na1")
	require.NoError(t, err)
	require.Equal(t, 3, summary.Received)
	require.Equal(t, 2, summary.Invalid)
	require.Equal(t, 1, summary.Imported)
	require.Equal(t, 1, matches.Totals().Matches)
}

func TestMatchImportService_DuplicateParticipantIsInvalid(t *testing.T) {
	t.Parallel()

	repeated := schematest.Match("NA1_301")
	repeated.Info.Participants[9].ParticipantID = repeated.Info.Participants[0].ParticipantID
	service, matches, _ := newMemoryImporter()
	summary, err := service.ImportMatches(context.Background(), [][]byte{
		schematest.MatchJSON(repeated),
		schematest.MatchJSON(schematest.Match("NA1_302")),
	}, "na1")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Invalid)
	require.Equal(t, 1, summary.Imported)

	totals := matches.Totals()
	require.Equal(t, 1, totals.Matches)
	require.Equal(t, 10, totals.Participants)
}

func TestMatchImportService_InsertsOnlyUnseenSummonersUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	summonerRepo := matchmock.NewSummonerRepository(t)
	service := NewMatchImportService(schema.NewDecoder(logging.NewNop()), matchRepo, summonerRepo, logging.NewNop())

	known := map[string]struct{}{}
	for _, puuid := range []string{"puuid-1", "puuid-2", "puuid-3"} {
		known[puuid] = struct{}{}
	}
	summonerRepo.
		On("KnownPUUIDs", mock.Anything, mock.MatchedBy(func(v []string) bool { return len(v) == 10 })).
		Return(known, nil).
		Once()
	summonerRepo.
		On("InsertIgnore", mock.Anything, mock.MatchedBy(func(v []match.Summoner) bool {
			if len(v) != 7 {
				return false
			}
			for _, s := range v {
				if _, ok := known[s.PUUID]; ok {
					return false
				}
			}
			return true
		})).
		Return(7, nil).
		Once()
	matchRepo.
		On("SaveGraphs", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.MatchedBy(func(v []match.Graph) bool {
			return len(v) == 1 && v[0].Match.ExternalID == "NA1_9" && len(v[0].Participants) == 10
		})).
		Return(match.SaveResult{Matches: 1, Participants: 10, Stats: 10, Teams: 2, Bans: 10}, nil).
		Once()

	summary, err := service.ImportMatches(ctx, [][]byte{schematest.MatchJSON(schematest.Match("NA1_9"))}, "na1")
	require.NoError(t, err)
	require.Equal(t, 7, summary.NewSummoners)
	require.Equal(t, 10, summary.Rows.Bans)
}

func TestMatchImportService_PersistFailureIsReturned(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	summonerRepo := matchmock.NewSummonerRepository(t)
	service := NewMatchImportService(schema.NewDecoder(logging.NewNop()), matchRepo, summonerRepo, logging.NewNop())

	summonerRepo.On("KnownPUUIDs", mock.Anything, mock.Anything).Return(map[string]struct{}{}, nil).Once()
	summonerRepo.On("InsertIgnore", mock.Anything, mock.Anything).Return(10, nil).Once()
	dbErr := errors.New("connection reset")
	matchRepo.On("SaveGraphs", mock.Anything, mock.Anything).Return(match.SaveResult{}, dbErr).Once()

	_, err := service.ImportMatches(context.Background(), [][]byte{schematest.MatchJSON(schematest.Match("NA1_10"))}, "na1")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
