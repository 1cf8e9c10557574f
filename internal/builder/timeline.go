package builder

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
	"github.com/riskibarqy/lol-match-history/internal/schema"
)

// BuildTimeline assembles the full timeline subtree in memory. Frame indexes
// follow payload order; event indexes keep the upstream position so skipped
// tags leave gaps rather than renumbering.
func BuildTimeline(p *schema.TimelinePayload, matchID int64) *timeline.AdvancedTimeline {
	out := &timeline.AdvancedTimeline{
		MatchID:         matchID,
		ExternalMatchID: p.Metadata.MatchID,
		FrameInterval:   p.Info.FrameInterval,
		Frames:          make([]timeline.Frame, 0, len(p.Info.Frames)),
	}

	for i, framePayload := range p.Info.Frames {
		frame := timeline.Frame{
			FrameIndex:        i,
			Timestamp:         framePayload.Timestamp,
			ParticipantFrames: make([]timeline.ParticipantFrame, 0, len(framePayload.ParticipantFrames)),
			Events:            make([]timeline.EventRow, 0, len(framePayload.Events)),
		}
		for _, pf := range framePayload.ParticipantFrames {
			frame.ParticipantFrames = append(frame.ParticipantFrames, BuildParticipantFrame(pf))
		}
		sort.Slice(frame.ParticipantFrames, func(a, b int) bool {
			return frame.ParticipantFrames[a].ParticipantIndex < frame.ParticipantFrames[b].ParticipantIndex
		})

		for j, event := range framePayload.Events {
			row, ok := BuildEventRow(event)
			if !ok {
				continue
			}
			row.EventIndex = j
			frame.Events = append(frame.Events, row)
		}
		out.Frames = append(out.Frames, frame)
	}
	return out
}

func BuildParticipantFrame(p schema.ParticipantFramePayload) timeline.ParticipantFrame {
	return timeline.ParticipantFrame{
		ParticipantIndex:         p.ParticipantID,
		CurrentGold:              p.CurrentGold,
		GoldPerSecond:            p.GoldPerSecond,
		JungleMinionsKilled:      p.JungleMinionsKilled,
		Level:                    p.Level,
		MinionsKilled:            p.MinionsKilled,
		TimeEnemySpentControlled: p.TimeEnemySpentControlled,
		TotalGold:                p.TotalGold,
		XP:                       p.XP,
		PositionX:                p.Position.X,
		PositionY:                p.Position.Y,
		ChampionStats:            timeline.ChampionStats(p.ChampionStats),
		DamageStats:              timeline.DamageStats(p.DamageStats),
	}
}

// BuildEventRow converts one decoded event. It reports false for tags that
// are acknowledged but not persisted. The switch is exhaustive over the
// sealed event set; a variant without a case is a programming error.
func BuildEventRow(event schema.Event) (timeline.EventRow, bool) {
	header := event.Header()
	row := timeline.EventRow{
		Type:          header.Type,
		Timestamp:     header.Timestamp,
		RealTimestamp: header.RealTimestamp,
	}

	switch e := event.(type) {
	case *schema.WardPlacedEvent:
		row.CreatorID = ptr(e.CreatorID)
		row.WardType = ptr(e.WardType)
	case *schema.WardKillEvent:
		row.KillerID = ptr(e.KillerID)
		row.WardType = ptr(e.WardType)
	case *schema.ItemPurchasedEvent:
		row.ParticipantID = ptr(e.ParticipantID)
		row.ItemID = ptr(e.ItemID)
	case *schema.ItemDestroyedEvent:
		row.ParticipantID = ptr(e.ParticipantID)
		row.ItemID = ptr(e.ItemID)
	case *schema.ItemSoldEvent:
		row.ParticipantID = ptr(e.ParticipantID)
		row.ItemID = ptr(e.ItemID)
	case *schema.ItemUndoEvent:
		row.ParticipantID = ptr(e.ParticipantID)
		row.BeforeID = ptr(e.BeforeID)
		row.AfterID = ptr(e.AfterID)
		row.GoldGain = ptr(e.GoldGain)
	case *schema.SkillLevelUpEvent:
		row.ParticipantID = ptr(e.ParticipantID)
		row.SkillSlot = ptr(e.SkillSlot)
		row.LevelUpType = ptr(e.LevelUpType)
	case *schema.LevelUpEvent:
		row.ParticipantID = ptr(e.ParticipantID)
		row.Level = ptr(e.Level)
	case *schema.ChampionSpecialKillEvent:
		row.KillType = ptr(e.KillType)
		row.KillerID = ptr(e.KillerID)
		row.MultiKillLength = ptr(e.MultiKillLength)
		setPosition(&row, e.Position)
	case *schema.TurretPlateDestroyedEvent:
		row.KillerID = ptr(e.KillerID)
		row.LaneType = ptr(e.LaneType)
		row.TeamID = ptr(e.TeamID)
		setPosition(&row, e.Position)
	case *schema.EliteMonsterKillEvent:
		row.KillerID = ptr(e.KillerID)
		row.KillerTeamID = ptr(e.KillerTeamID)
		row.MonsterType = ptr(e.MonsterType)
		row.MonsterSubType = ptr(e.MonsterSubType)
		row.Bounty = ptr(e.Bounty)
		row.AssistingParticipantIDs = cloneIDs(e.AssistingParticipantIDs)
		setPosition(&row, e.Position)
	case *schema.BuildingKillEvent:
		row.KillerID = ptr(e.KillerID)
		row.TeamID = ptr(e.TeamID)
		row.BuildingType = ptr(e.BuildingType)
		row.LaneType = ptr(e.LaneType)
		row.TowerType = ptr(e.TowerType)
		row.Bounty = ptr(e.Bounty)
		row.AssistingParticipantIDs = cloneIDs(e.AssistingParticipantIDs)
		setPosition(&row, e.Position)
	case *schema.GameEndEvent:
		row.GameID = ptr(e.GameID)
		row.WinningTeam = ptr(e.WinningTeam)
	case *schema.ChampionKillEvent:
		row.KillerID = ptr(e.KillerID)
		row.VictimID = ptr(e.VictimID)
		row.Bounty = ptr(e.Bounty)
		row.ShutdownBounty = ptr(e.ShutdownBounty)
		row.KillStreakLength = ptr(e.KillStreakLength)
		row.AssistingParticipantIDs = cloneIDs(e.AssistingParticipantIDs)
		setPosition(&row, e.Position)
		row.VictimDamage = buildVictimDamage(e)
	case *schema.IgnoredEvent:
		return timeline.EventRow{}, false
	default:
		panic(fmt.Sprintf("builder: timeline event %T has no row mapping", event))
	}
	return row, true
}

func buildVictimDamage(e *schema.ChampionKillEvent) []timeline.VictimDamage {
	if len(e.VictimDamageDealt)+len(e.VictimDamageReceived) == 0 {
		return nil
	}
	out := make([]timeline.VictimDamage, 0, len(e.VictimDamageDealt)+len(e.VictimDamageReceived))
	for i, d := range e.VictimDamageDealt {
		out = append(out, victimDamage(timeline.DirectionDealt, i, d))
	}
	for i, d := range e.VictimDamageReceived {
		out = append(out, victimDamage(timeline.DirectionReceived, i, d))
	}
	return out
}

func victimDamage(direction string, seq int, d schema.VictimDamagePayload) timeline.VictimDamage {
	return timeline.VictimDamage{
		Direction:      direction,
		Seq:            seq,
		Basic:          d.Basic,
		MagicDamage:    d.MagicDamage,
		PhysicalDamage: d.PhysicalDamage,
		TrueDamage:     d.TrueDamage,
		Name:           d.Name,
		ParticipantID:  d.ParticipantID,
		SpellName:      d.SpellName,
		SpellSlot:      d.SpellSlot,
		Type:           d.Type,
	}
}

func setPosition(row *timeline.EventRow, pos schema.PositionPayload) {
	row.PositionX = ptr(int64(pos.X))
	row.PositionY = ptr(int64(pos.Y))
}

func cloneIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func ptr[T any](v T) *T {
	return &v
}
