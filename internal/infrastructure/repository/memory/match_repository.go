package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/lol-match-history/internal/domain/match"
)

type participantKey struct {
	matchID int64
	index   int
}

type teamKey struct {
	matchID int64
	teamID  int
}

type banKey struct {
	teamID   int64
	pickTurn int
}

// MatchRepository keeps match graphs in memory with the same conflict rules
// as the Postgres tables.
type MatchRepository struct {
	mu sync.RWMutex

	seq          int64
	matches      map[string]match.Match
	participants map[participantKey]match.Participant
	stats        map[int64]match.Stats
	teams        map[teamKey]match.Team
	bans         map[banKey]match.Ban
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		matches:      make(map[string]match.Match),
		participants: make(map[participantKey]match.Participant),
		stats:        make(map[int64]match.Stats),
		teams:        make(map[teamKey]match.Team),
		bans:         make(map[banKey]match.Ban),
	}
}

func (r *MatchRepository) nextID() int64 {
	r.seq++
	return r.seq
}

func (r *MatchRepository) KnownExternalIDs(_ context.Context, externalIDs []string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{})
	for _, id := range externalIDs {
		if _, ok := r.matches[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

func (r *MatchRepository) GetByExternalID(_ context.Context, externalID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[externalID]
	return item, ok, nil
}

func (r *MatchRepository) SaveGraphs(_ context.Context, graphs []match.Graph) (match.SaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result match.SaveResult
	for _, graph := range graphs {
		stored, ok := r.matches[graph.Match.ExternalID]
		if ok {
			stored.GameDuration = graph.Match.GameDuration
		} else {
			stored = graph.Match
			stored.ID = r.nextID()
		}
		r.matches[stored.ExternalID] = stored
		result.Matches++

		for _, pg := range graph.Participants {
			key := participantKey{matchID: stored.ID, index: pg.Participant.ParticipantIndex}
			participant, ok := r.participants[key]
			if ok {
				participant.ChampionID = pg.Participant.ChampionID
			} else {
				participant = pg.Participant
				participant.ID = r.nextID()
				participant.MatchID = stored.ID
			}
			r.participants[key] = participant
			result.Participants++

			if _, ok := r.stats[participant.ID]; ok {
				continue
			}
			stats := pg.Stats
			stats.ID = r.nextID()
			stats.ParticipantID = participant.ID
			r.stats[participant.ID] = stats
			result.Stats++
		}

		for _, tg := range graph.Teams {
			key := teamKey{matchID: stored.ID, teamID: tg.Team.TeamID}
			team, ok := r.teams[key]
			if !ok {
				team = tg.Team
				team.ID = r.nextID()
				team.MatchID = stored.ID
				r.teams[key] = team
				result.Teams++
			}

			for _, ban := range tg.Bans {
				bk := banKey{teamID: team.ID, pickTurn: ban.PickTurn}
				if _, ok := r.bans[bk]; ok {
					continue
				}
				ban.ID = r.nextID()
				ban.TeamID = team.ID
				r.bans[bk] = ban
				result.Bans++
			}
		}
	}
	return result, nil
}

// Totals reports the number of stored rows per table.
func (r *MatchRepository) Totals() match.SaveResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return match.SaveResult{
		Matches:      len(r.matches),
		Participants: len(r.participants),
		Stats:        len(r.stats),
		Teams:        len(r.teams),
		Bans:         len(r.bans),
	}
}

// Participants returns the stored participants of a match by index.
func (r *MatchRepository) Participants(externalID string) []match.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.matches[externalID]
	if !ok {
		return nil
	}
	out := make([]match.Participant, 0, 10)
	for index := 1; index <= 20; index++ {
		if p, ok := r.participants[participantKey{matchID: stored.ID, index: index}]; ok {
			out = append(out, p)
		}
	}
	return out
}

type SummonerRepository struct {
	mu        sync.RWMutex
	seq       int64
	summoners map[string]match.Summoner
}

func NewSummonerRepository() *SummonerRepository {
	return &SummonerRepository{summoners: make(map[string]match.Summoner)}
}

func (r *SummonerRepository) KnownPUUIDs(_ context.Context, puuids []string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{})
	for _, puuid := range puuids {
		if _, ok := r.summoners[puuid]; ok {
			out[puuid] = struct{}{}
		}
	}
	return out, nil
}

func (r *SummonerRepository) InsertIgnore(_ context.Context, summoners []match.Summoner) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, item := range summoners {
		if item.PUUID == "" {
			continue
		}
		if _, ok := r.summoners[item.PUUID]; ok {
			continue
		}
		r.seq++
		item.ID = r.seq
		r.summoners[item.PUUID] = item
		inserted++
	}
	return inserted, nil
}

func (r *SummonerRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.summoners)
}
