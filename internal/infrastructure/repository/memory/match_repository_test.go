package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graph(externalID string, duration int64, champion int) match.Graph {
	return match.Graph{
		Match: match.Match{ExternalID: externalID, GameDuration: duration, QueueID: 420},
		Participants: []match.ParticipantGraph{
			{Participant: match.Participant{ParticipantIndex: 1, PUUID: "p1", ChampionID: champion, TeamID: 100}},
			{Participant: match.Participant{ParticipantIndex: 2, PUUID: "p2", ChampionID: 22, TeamID: 200}},
		},
		Teams: []match.TeamGraph{
			{Team: match.Team{TeamID: 100, Win: true}, Bans: []match.Ban{{PickTurn: 1, ChampionID: 7}}},
			{Team: match.Team{TeamID: 200}, Bans: []match.Ban{{PickTurn: 2, ChampionID: 8}}},
		},
	}
}

func TestMatchRepository_SaveGraphsFollowsConflictRules(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()

	first, err := repo.SaveGraphs(ctx, []match.Graph{graph("NA1_1", 1800, 11)})
	require.NoError(t, err)
	assert.Equal(t, match.SaveResult{Matches: 1, Participants: 2, Stats: 2, Teams: 2, Bans: 2}, first)

	second, err := repo.SaveGraphs(ctx, []match.Graph{graph("NA1_1", 1900, 99)})
	require.NoError(t, err)
	assert.Equal(t, match.SaveResult{Matches: 1, Participants: 2}, second, "stats, teams and bans are insert-ignore")
	assert.Equal(t, match.SaveResult{Matches: 1, Participants: 2, Stats: 2, Teams: 2, Bans: 2}, repo.Totals())

	stored, ok, err := repo.GetByExternalID(ctx, "NA1_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 1900, stored.GameDuration)
	assert.Equal(t, 420, stored.QueueID)

	participants := repo.Participants("NA1_1")
	require.Len(t, participants, 2)
	assert.Equal(t, 99, participants[0].ChampionID)
	assert.Equal(t, stored.ID, participants[0].MatchID)
}

func TestMatchRepository_KnownExternalIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()
	_, err := repo.SaveGraphs(ctx, []match.Graph{graph("EUW1_1", 1200, 1)})
	require.NoError(t, err)

	known, err := repo.KnownExternalIDs(ctx, []string{"EUW1_1", "EUW1_2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"EUW1_1": {}}, known)

	_, ok, err := repo.GetByExternalID(ctx, "EUW1_2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSummonerRepository_InsertIgnore(t *testing.T) {
	ctx := context.Background()
	repo := NewSummonerRepository()

	n, err := repo.InsertIgnore(ctx, []match.Summoner{{PUUID: "a"}, {PUUID: ""}, {PUUID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.InsertIgnore(ctx, []match.Summoner{{PUUID: "a", GameName: "renamed"}, {PUUID: "c"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, repo.Count())

	known, err := repo.KnownPUUIDs(ctx, []string{"a", "z"})
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}}, known)
}
