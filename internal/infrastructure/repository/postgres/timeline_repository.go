package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
	qb "github.com/riskibarqy/lol-match-history/internal/platform/querybuilder"
)

const deleteTimelineByMatchSQL = `DELETE FROM advanced_timelines WHERE match_id = $1`

type TimelineRepository struct {
	db *sqlx.DB
}

func NewTimelineRepository(db *sqlx.DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

func (r *TimelineRepository) ExistsForMatch(ctx context.Context, matchID int64) (bool, error) {
	query, args, err := qb.Select("1").From("advanced_timelines").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select timeline exists query: %w", err)
	}

	var rows []int
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return false, fmt.Errorf("select timeline exists: %w", err)
	}
	return len(rows) > 0, nil
}

// Save writes the whole subtree in one transaction: timeline, frames,
// participant frames and events, then the victim damage rows of champion
// kills. Any failure rolls everything back.
func (r *TimelineRepository) Save(ctx context.Context, item *timeline.AdvancedTimeline, overwrite bool) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save timeline tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if overwrite {
		if _, err := tx.ExecContext(ctx, deleteTimelineByMatchSQL, item.MatchID); err != nil {
			return 0, fmt.Errorf("delete previous timeline: %w", err)
		}
	}

	query, args, err := qb.InsertModel("advanced_timelines", timelineInsertModel{
		MatchID:       item.MatchID,
		FrameInterval: item.FrameInterval,
	}, qb.Returning(qb.OnConflictDoNothing("match_id"), "id"))
	if err != nil {
		return 0, fmt.Errorf("build insert timeline query: %w", err)
	}
	var ids []int64
	if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
		return 0, fmt.Errorf("insert timeline: %w", err)
	}
	if len(ids) == 0 {
		return 0, timeline.ErrAlreadyExists
	}
	timelineID := ids[0]

	frameIDs, err := insertFrames(ctx, tx, timelineID, item.Frames)
	if err != nil {
		return 0, err
	}
	if err := insertParticipantFrames(ctx, tx, item.Frames, frameIDs); err != nil {
		return 0, err
	}
	eventIDs, err := insertEvents(ctx, tx, item.Frames, frameIDs)
	if err != nil {
		return 0, err
	}
	if err := insertVictimDamage(ctx, tx, item.Frames, frameIDs, eventIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save timeline tx: %w", err)
	}
	return timelineID, nil
}

func insertFrames(ctx context.Context, tx *sqlx.Tx, timelineID int64, frames []timeline.Frame) (map[int]int64, error) {
	out := make(map[int]int64, len(frames))
	if len(frames) == 0 {
		return out, nil
	}

	rows := make([]frameInsertModel, 0, len(frames))
	for _, frame := range frames {
		rows = append(rows, frameInsertModel{
			TimelineID: timelineID,
			FrameIndex: frame.FrameIndex,
			Timestamp:  frame.Timestamp,
		})
	}
	stmts, err := qb.InsertModels("timeline_frames", rows, qb.Returning("", "id", "frame_index"))
	if err != nil {
		return nil, fmt.Errorf("build insert frames query: %w", err)
	}
	keys, err := selectStatements[frameKeyRow](ctx, tx, "insert frames", stmts)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		out[key.FrameIndex] = key.ID
	}
	return out, nil
}

func insertParticipantFrames(ctx context.Context, tx *sqlx.Tx, frames []timeline.Frame, frameIDs map[int]int64) error {
	rows := make([]participantFrameInsertModel, 0, len(frames)*10)
	for _, frame := range frames {
		frameID := frameIDs[frame.FrameIndex]
		for _, pf := range frame.ParticipantFrames {
			rows = append(rows, participantFrameInsertModel{
				FrameID:                  frameID,
				ParticipantIndex:         pf.ParticipantIndex,
				CurrentGold:              pf.CurrentGold,
				GoldPerSecond:            pf.GoldPerSecond,
				JungleMinionsKilled:      pf.JungleMinionsKilled,
				Level:                    pf.Level,
				MinionsKilled:            pf.MinionsKilled,
				TimeEnemySpentControlled: pf.TimeEnemySpentControlled,
				TotalGold:                pf.TotalGold,
				XP:                       pf.XP,
				PositionX:                pf.PositionX,
				PositionY:                pf.PositionY,
				ChampionStatsColumns:     ChampionStatsColumns(pf.ChampionStats),
				DamageStatsColumns:       DamageStatsColumns(pf.DamageStats),
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	stmts, err := qb.InsertModels("timeline_participant_frames", rows, "")
	if err != nil {
		return fmt.Errorf("build insert participant frames query: %w", err)
	}
	_, err = execStatements(ctx, tx, "insert participant frames", stmts)
	return err
}

type eventRef struct {
	frameID int64
	index   int
}

func insertEvents(ctx context.Context, tx *sqlx.Tx, frames []timeline.Frame, frameIDs map[int]int64) (map[eventRef]int64, error) {
	out := make(map[eventRef]int64)
	rows := make([]eventInsertModel, 0)
	for _, frame := range frames {
		frameID := frameIDs[frame.FrameIndex]
		for _, e := range frame.Events {
			rows = append(rows, eventInsertModel{
				FrameID:                 frameID,
				EventIndex:              e.EventIndex,
				Type:                    e.Type,
				Timestamp:               e.Timestamp,
				RealTimestamp:           e.RealTimestamp,
				ParticipantID:           e.ParticipantID,
				CreatorID:               e.CreatorID,
				KillerID:                e.KillerID,
				KillerTeamID:            e.KillerTeamID,
				VictimID:                e.VictimID,
				TeamID:                  e.TeamID,
				ItemID:                  e.ItemID,
				BeforeID:                e.BeforeID,
				AfterID:                 e.AfterID,
				GoldGain:                e.GoldGain,
				SkillSlot:               e.SkillSlot,
				Level:                   e.Level,
				MultiKillLength:         e.MultiKillLength,
				Bounty:                  e.Bounty,
				ShutdownBounty:          e.ShutdownBounty,
				KillStreakLength:        e.KillStreakLength,
				GameID:                  e.GameID,
				WinningTeam:             e.WinningTeam,
				PositionX:               e.PositionX,
				PositionY:               e.PositionY,
				LevelUpType:             e.LevelUpType,
				WardType:                e.WardType,
				KillType:                e.KillType,
				MonsterType:             e.MonsterType,
				MonsterSubType:          e.MonsterSubType,
				BuildingType:            e.BuildingType,
				LaneType:                e.LaneType,
				TowerType:               e.TowerType,
				AssistingParticipantIDs: pq.Int64Array(append([]int64{}, e.AssistingParticipantIDs...)),
			})
		}
	}
	if len(rows) == 0 {
		return out, nil
	}

	stmts, err := qb.InsertModels("timeline_events", rows, qb.Returning("", "id", "frame_id", "event_index"))
	if err != nil {
		return nil, fmt.Errorf("build insert events query: %w", err)
	}
	keys, err := selectStatements[eventKeyRow](ctx, tx, "insert events", stmts)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		out[eventRef{frameID: key.FrameID, index: key.EventIndex}] = key.ID
	}
	return out, nil
}

func insertVictimDamage(ctx context.Context, tx *sqlx.Tx, frames []timeline.Frame, frameIDs map[int]int64, eventIDs map[eventRef]int64) error {
	rows := make([]victimDamageInsertModel, 0)
	for _, frame := range frames {
		frameID := frameIDs[frame.FrameIndex]
		for _, e := range frame.Events {
			if len(e.VictimDamage) == 0 {
				continue
			}
			eventID, ok := eventIDs[eventRef{frameID: frameID, index: e.EventIndex}]
			if !ok {
				return fmt.Errorf("champion kill at frame %d event %d has no stored id", frame.FrameIndex, e.EventIndex)
			}
			for _, d := range e.VictimDamage {
				rows = append(rows, victimDamageInsertModel{
					EventID:        eventID,
					Direction:      d.Direction,
					Seq:            d.Seq,
					Basic:          d.Basic,
					MagicDamage:    d.MagicDamage,
					PhysicalDamage: d.PhysicalDamage,
					TrueDamage:     d.TrueDamage,
					Name:           d.Name,
					ParticipantID:  d.ParticipantID,
					SpellName:      d.SpellName,
					SpellSlot:      d.SpellSlot,
					Type:           d.Type,
				})
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}
	stmts, err := qb.InsertModels("timeline_victim_damage", rows, "")
	if err != nil {
		return fmt.Errorf("build insert victim damage query: %w", err)
	}
	_, err = execStatements(ctx, tx, "insert victim damage", stmts)
	return err
}
