package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	qb "github.com/riskibarqy/lol-match-history/internal/platform/querybuilder"
)

var (
	matchConflictColumns       = []string{"external_id"}
	matchUpdateColumns         = []string{"game_duration"}
	participantConflictColumns = []string{"match_id", "participant_index"}
	participantUpdateColumns   = []string{"champion_id"}
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) KnownExternalIDs(ctx context.Context, externalIDs []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(externalIDs))
	if len(externalIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("external_id").From("matches").
		Where(qb.Any("external_id", pq.Array(externalIDs))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select known matches query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select known matches: %w", err)
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *MatchRepository) GetByExternalID(ctx context.Context, externalID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by external id: %w", err)
	}

	return match.Match{
		ID:           row.ID,
		ExternalID:   row.ExternalID,
		GameCreation: row.GameCreation,
		GameDuration: row.GameDuration,
		QueueID:      row.QueueID,
		PlatformID:   row.PlatformID,
		Region:       row.Region,
		GameMode:     row.GameMode,
		GameType:     row.GameType,
		MapID:        row.MapID,
		GameVersion:  row.GameVersion,
		Major:        row.Major,
		Minor:        row.Minor,
		Patch:        row.Patch,
		Build:        row.Build,
	}, true, nil
}

// SaveGraphs writes matches, participants, stats, teams and bans in that
// order inside one transaction. Rows are sorted by their conflict key so
// concurrent writers lock index entries in the same order.
func (r *MatchRepository) SaveGraphs(ctx context.Context, graphs []match.Graph) (match.SaveResult, error) {
	var result match.SaveResult
	if len(graphs) == 0 {
		return result, nil
	}

	graphs = append([]match.Graph(nil), graphs...)
	sort.SliceStable(graphs, func(i, j int) bool {
		return graphs[i].Match.ExternalID < graphs[j].Match.ExternalID
	})

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin save matches tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	matchIDs, err := upsertMatches(ctx, tx, graphs)
	if err != nil {
		return result, err
	}
	result.Matches = len(matchIDs)

	participantIDs, err := upsertParticipants(ctx, tx, graphs, matchIDs)
	if err != nil {
		return result, err
	}
	result.Participants = len(participantIDs)

	if result.Stats, err = insertStats(ctx, tx, graphs, matchIDs, participantIDs); err != nil {
		return result, err
	}
	if result.Teams, err = insertTeams(ctx, tx, graphs, matchIDs); err != nil {
		return result, err
	}
	teamIDs, err := selectTeamIDs(ctx, tx, matchIDs)
	if err != nil {
		return result, err
	}
	if result.Bans, err = insertBans(ctx, tx, graphs, matchIDs, teamIDs); err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit save matches tx: %w", err)
	}
	return result, nil
}

func upsertMatches(ctx context.Context, tx *sqlx.Tx, graphs []match.Graph) (map[string]int64, error) {
	rows := make([]matchInsertModel, 0, len(graphs))
	for _, graph := range graphs {
		m := graph.Match
		rows = append(rows, matchInsertModel{
			ExternalID:   m.ExternalID,
			GameCreation: m.GameCreation,
			GameDuration: m.GameDuration,
			QueueID:      m.QueueID,
			PlatformID:   m.PlatformID,
			Region:       m.Region,
			GameMode:     m.GameMode,
			GameType:     m.GameType,
			MapID:        m.MapID,
			GameVersion:  m.GameVersion,
			Major:        m.Major,
			Minor:        m.Minor,
			Patch:        m.Patch,
			Build:        m.Build,
		})
	}

	suffix := qb.Returning(qb.OnConflictUpdate(matchConflictColumns, matchUpdateColumns...), "id", "external_id")
	stmts, err := qb.InsertModels("matches", rows, suffix)
	if err != nil {
		return nil, fmt.Errorf("build upsert matches query: %w", err)
	}
	keys, err := selectStatements[matchKeyRow](ctx, tx, "upsert matches", stmts)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(keys))
	for _, key := range keys {
		out[key.ExternalID] = key.ID
	}
	return out, nil
}

type participantRef struct {
	matchID int64
	index   int
}

func upsertParticipants(ctx context.Context, tx *sqlx.Tx, graphs []match.Graph, matchIDs map[string]int64) (map[participantRef]int64, error) {
	rows := make([]participantInsertModel, 0, len(graphs)*10)
	for _, graph := range graphs {
		matchID := matchIDs[graph.Match.ExternalID]
		for _, pg := range graph.Participants {
			p := pg.Participant
			rows = append(rows, participantInsertModel{
				MatchID:            matchID,
				ParticipantIndex:   p.ParticipantIndex,
				PUUID:              p.PUUID,
				RiotIDGameName:     p.RiotIDGameName,
				RiotIDTagline:      p.RiotIDTagline,
				SummonerName:       p.SummonerName,
				ChampionID:         p.ChampionID,
				ChampionName:       p.ChampionName,
				Summoner1ID:        p.Summoner1ID,
				Summoner2ID:        p.Summoner2ID,
				TeamID:             p.TeamID,
				TeamPosition:       p.TeamPosition,
				IndividualPosition: p.IndividualPosition,
				Lane:               p.Lane,
				Role:               p.Role,
				Win:                p.Win,
			})
		}
	}
	if len(rows) == 0 {
		return map[participantRef]int64{}, nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MatchID != rows[j].MatchID {
			return rows[i].MatchID < rows[j].MatchID
		}
		return rows[i].ParticipantIndex < rows[j].ParticipantIndex
	})

	suffix := qb.Returning(qb.OnConflictUpdate(participantConflictColumns, participantUpdateColumns...), "id", "match_id", "participant_index")
	stmts, err := qb.InsertModels("match_participants", rows, suffix)
	if err != nil {
		return nil, fmt.Errorf("build upsert participants query: %w", err)
	}
	keys, err := selectStatements[participantKeyRow](ctx, tx, "upsert participants", stmts)
	if err != nil {
		return nil, err
	}

	out := make(map[participantRef]int64, len(keys))
	for _, key := range keys {
		out[participantRef{matchID: key.MatchID, index: key.ParticipantIndex}] = key.ID
	}
	return out, nil
}

func insertStats(ctx context.Context, tx *sqlx.Tx, graphs []match.Graph, matchIDs map[string]int64, participantIDs map[participantRef]int64) (int, error) {
	rows := make([]statsInsertModel, 0, len(participantIDs))
	for _, graph := range graphs {
		matchID := matchIDs[graph.Match.ExternalID]
		for _, pg := range graph.Participants {
			participantID, ok := participantIDs[participantRef{matchID: matchID, index: pg.Participant.ParticipantIndex}]
			if !ok {
				continue
			}
			s := pg.Stats
			rows = append(rows, statsInsertModel{
				ParticipantID:   participantID,
				StatsColumns:    StatsColumns(s.Counters),
				StatPerkDefense: s.StatPerkDefense,
				StatPerkFlex:    s.StatPerkFlex,
				StatPerkOffense: s.StatPerkOffense,
				PrimaryStyle:    s.PrimaryStyle,
				SubStyle:        s.SubStyle,
				Perk0:           s.Perk0,
				Perk1:           s.Perk1,
				Perk2:           s.Perk2,
				Perk3:           s.Perk3,
				Perk4:           s.Perk4,
				Perk5:           s.Perk5,
			})
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ParticipantID < rows[j].ParticipantID })

	stmts, err := qb.InsertModels("match_participant_stats", rows, qb.OnConflictDoNothing("participant_id"))
	if err != nil {
		return 0, fmt.Errorf("build insert stats query: %w", err)
	}
	return execStatements(ctx, tx, "insert stats", stmts)
}

func insertTeams(ctx context.Context, tx *sqlx.Tx, graphs []match.Graph, matchIDs map[string]int64) (int, error) {
	rows := make([]teamInsertModel, 0, len(graphs)*2)
	for _, graph := range graphs {
		matchID := matchIDs[graph.Match.ExternalID]
		for _, tg := range graph.Teams {
			t := tg.Team
			rows = append(rows, teamInsertModel{
				MatchID:         matchID,
				TeamID:          t.TeamID,
				Win:             t.Win,
				AtakhanFirst:    t.AtakhanFirst,
				AtakhanKills:    t.AtakhanKills,
				BaronFirst:      t.BaronFirst,
				BaronKills:      t.BaronKills,
				ChampionFirst:   t.ChampionFirst,
				ChampionKills:   t.ChampionKills,
				DragonFirst:     t.DragonFirst,
				DragonKills:     t.DragonKills,
				HordeFirst:      t.HordeFirst,
				HordeKills:      t.HordeKills,
				InhibitorFirst:  t.InhibitorFirst,
				InhibitorKills:  t.InhibitorKills,
				RiftHeraldFirst: t.RiftHeraldFirst,
				RiftHeraldKills: t.RiftHeraldKills,
				TowerFirst:      t.TowerFirst,
				TowerKills:      t.TowerKills,
			})
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MatchID != rows[j].MatchID {
			return rows[i].MatchID < rows[j].MatchID
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	stmts, err := qb.InsertModels("match_teams", rows, qb.OnConflictDoNothing("match_id", "team_id"))
	if err != nil {
		return 0, fmt.Errorf("build insert teams query: %w", err)
	}
	return execStatements(ctx, tx, "insert teams", stmts)
}

type teamRef struct {
	matchID int64
	side    int
}

// selectTeamIDs re-reads team ids because ignored conflicts return no rows.
func selectTeamIDs(ctx context.Context, tx *sqlx.Tx, matchIDs map[string]int64) (map[teamRef]int64, error) {
	ids := make([]int64, 0, len(matchIDs))
	for _, id := range matchIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	query, args, err := qb.Select("id", "match_id", "team_id").From("match_teams").
		Where(qb.Any("match_id", pq.Array(ids))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team ids query: %w", err)
	}

	var rows []teamKeyRow
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team ids: %w", err)
	}
	out := make(map[teamRef]int64, len(rows))
	for _, row := range rows {
		out[teamRef{matchID: row.MatchID, side: row.TeamID}] = row.ID
	}
	return out, nil
}

func insertBans(ctx context.Context, tx *sqlx.Tx, graphs []match.Graph, matchIDs map[string]int64, teamIDs map[teamRef]int64) (int, error) {
	rows := make([]banInsertModel, 0, len(graphs)*10)
	for _, graph := range graphs {
		matchID := matchIDs[graph.Match.ExternalID]
		for _, tg := range graph.Teams {
			teamID, ok := teamIDs[teamRef{matchID: matchID, side: tg.Team.TeamID}]
			if !ok {
				continue
			}
			for _, ban := range tg.Bans {
				rows = append(rows, banInsertModel{
					TeamID:     teamID,
					PickTurn:   ban.PickTurn,
					ChampionID: ban.ChampionID,
				})
			}
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TeamID != rows[j].TeamID {
			return rows[i].TeamID < rows[j].TeamID
		}
		return rows[i].PickTurn < rows[j].PickTurn
	})

	stmts, err := qb.InsertModels("match_bans", rows, qb.OnConflictDoNothing("team_id", "pick_turn"))
	if err != nil {
		return 0, fmt.Errorf("build insert bans query: %w", err)
	}
	return execStatements(ctx, tx, "insert bans", stmts)
}
