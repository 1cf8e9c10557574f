// Package schematest builds upstream payload fixtures for tests.
package schematest

import (
	"encoding/json"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/lol-match-history/internal/schema"
)

const (
	DefaultDuration = 1500
	DefaultVersion  = "14.3.558.106"
)

// Match returns a ranked solo game with ten participants and five bans per
// team. Participant puuids are stable ("puuid-1" .. "puuid-10") so several
// fixtures share players.
func Match(matchID string) schema.MatchPayload {
	payload := schema.MatchPayload{
		Metadata: schema.MatchMetadata{
			DataVersion: "2",
			MatchID:     matchID,
		},
		Info: schema.MatchInfo{
			GameCreation:       1707000000000,
			GameDuration:       DefaultDuration,
			GameEndTimestamp:   1707001500000,
			GameID:             4900000000,
			GameMode:           "CLASSIC",
			GameStartTimestamp: 1707000000500,
			GameType:           "MATCHED_GAME",
			GameVersion:        DefaultVersion,
			MapID:              11,
			PlatformID:         "NA1",
			QueueID:            420,
		},
	}

	for i := 1; i <= 10; i++ {
		teamID := 100
		if i > 5 {
			teamID = 200
		}
		puuid := fmt.Sprintf("puuid-%d", i)
		payload.Metadata.Participants = append(payload.Metadata.Participants, puuid)
		payload.Info.Participants = append(payload.Info.Participants, Participant(i, teamID, puuid))
	}

	for _, teamID := range []int{100, 200} {
		team := schema.TeamPayload{
			TeamID: teamID,
			Win:    teamID == 100,
			Objectives: schema.ObjectivesPayload{
				Baron:  schema.ObjectivePayload{First: teamID == 100, Kills: 1},
				Dragon: schema.ObjectivePayload{Kills: 2},
				Tower:  schema.ObjectivePayload{First: teamID == 200, Kills: 7},
			},
		}
		for turn := 1; turn <= 5; turn++ {
			pickTurn := turn
			if teamID == 200 {
				pickTurn += 5
			}
			team.Bans = append(team.Bans, schema.BanPayload{ChampionID: 10 + pickTurn, PickTurn: pickTurn})
		}
		payload.Info.Teams = append(payload.Info.Teams, team)
	}
	return payload
}

func Participant(index, teamID int, puuid string) schema.ParticipantPayload {
	p := schema.ParticipantPayload{
		ParticipantID:  index,
		PUUID:          puuid,
		RiotIDGameName: fmt.Sprintf("player%d", index),
		RiotIDTagline:  "NA1",
		ChampionID:     100 + index,
		ChampionName:   fmt.Sprintf("Champion%d", index),
		Summoner1ID:    4,
		Summoner2ID:    14,
		TeamID:         teamID,
		TeamPosition:   "MIDDLE",
		Lane:           "MIDDLE",
		Role:           "SOLO",
		Win:            teamID == 100,
		Perks: schema.PerksPayload{
			StatPerks: schema.StatPerksPayload{Defense: 5001, Flex: 5008, Offense: 5005},
			Styles: []schema.PerkStylePayload{
				{Description: "primaryStyle", Style: 8100, Selections: []schema.PerkSelectionPayload{
					{Perk: 8112}, {Perk: 8139}, {Perk: 8138}, {Perk: 8135},
				}},
				{Description: "subStyle", Style: 8300, Selections: []schema.PerkSelectionPayload{
					{Perk: 8345}, {Perk: 8347},
				}},
			},
		},
	}
	p.Kills = index
	p.Deaths = 3
	p.Assists = 7
	p.GoldEarned = 10000 + index
	p.TotalDamageDealtToChampions = 20000 + index
	p.Item0 = 3020
	p.FirstBloodKill = index == 1
	return p
}

// Timeline returns frames 0..frames-1 with ten participant snapshots each
// and no events.
func Timeline(matchID string, frames int) schema.TimelinePayload {
	payload := schema.TimelinePayload{
		Metadata: schema.TimelineMetadata{DataVersion: "2", MatchID: matchID},
		Info: schema.TimelineInfo{
			FrameInterval: 60000,
			GameID:        4900000000,
		},
	}
	for i := 1; i <= 10; i++ {
		payload.Info.Participants = append(payload.Info.Participants, schema.TimelineParticipant{
			ParticipantID: i,
			PUUID:         fmt.Sprintf("puuid-%d", i),
		})
	}
	for f := 0; f < frames; f++ {
		frame := schema.FramePayload{
			Timestamp:         int64(f) * 60000,
			ParticipantFrames: make(map[string]schema.ParticipantFramePayload, 10),
		}
		for i := 1; i <= 10; i++ {
			frame.ParticipantFrames[fmt.Sprint(i)] = schema.ParticipantFramePayload{
				ParticipantID: i,
				CurrentGold:   500 + f*100,
				Level:         1 + f,
				TotalGold:     500 + f*300,
				XP:            f * 250,
				Position:      schema.PositionPayload{X: 500 + i, Y: 400 + i},
				ChampionStats: schema.ChampionStatsPayload{Health: 600, HealthMax: 620, Armor: 30},
				DamageStats:   schema.DamageStatsPayload{TotalDamageDone: f * 1000},
			}
		}
		payload.Info.Frames = append(payload.Info.Frames, frame)
	}
	return payload
}

// Event renders one raw timeline event.
func Event(tag string, timestamp int64, fields map[string]any) json.RawMessage {
	body := map[string]any{"type": tag, "timestamp": timestamp, "realTimestamp": 1707000000000 + timestamp}
	for k, v := range fields {
		body[k] = v
	}
	return mustMarshal(body)
}

// SampleEventFields has a fully populated body for every persisted tag.
var SampleEventFields = map[string]map[string]any{
	schema.EventWardPlaced:    {"creatorId": 3, "wardType": "YELLOW_TRINKET"},
	schema.EventWardKill:      {"killerId": 7, "wardType": "CONTROL_WARD"},
	schema.EventItemPurchased: {"participantId": 2, "itemId": 1055},
	schema.EventItemDestroyed: {"participantId": 2, "itemId": 2003},
	schema.EventItemSold:      {"participantId": 4, "itemId": 1001},
	schema.EventItemUndo:      {"participantId": 5, "beforeId": 1036, "afterId": 0, "goldGain": 350},
	schema.EventSkillLevelUp:  {"participantId": 6, "skillSlot": 1, "levelUpType": "NORMAL"},
	schema.EventLevelUp:       {"participantId": 6, "level": 2},
	schema.EventChampionSpecialKill: {
		"killType": "KILL_MULTI", "killerId": 1, "multiKillLength": 2,
		"position": map[string]any{"x": 7000, "y": 7100},
	},
	schema.EventTurretPlateDestroyed: {
		"killerId": 8, "laneType": "MID_LANE", "teamId": 100,
		"position": map[string]any{"x": 5846, "y": 6396},
	},
	schema.EventEliteMonsterKill: {
		"killerId": 9, "killerTeamId": 200, "monsterType": "DRAGON", "monsterSubType": "FIRE_DRAGON",
		"bounty": 0, "assistingParticipantIds": []int{6, 7},
		"position": map[string]any{"x": 9866, "y": 4414},
	},
	schema.EventBuildingKill: {
		"killerId": 10, "teamId": 100, "buildingType": "TOWER_BUILDING", "laneType": "BOT_LANE",
		"towerType": "OUTER_TURRET", "bounty": 250, "assistingParticipantIds": []int{8},
		"position": map[string]any{"x": 10504, "y": 1029},
	},
	schema.EventGameEnd: {"gameId": 4900000000, "winningTeam": 100},
	schema.EventChampionKill: {
		"killerId": 1, "victimId": 6, "bounty": 300, "shutdownBounty": 0, "killStreakLength": 1,
		"assistingParticipantIds": []int{2, 3},
		"position":                map[string]any{"x": 7000, "y": 7100},
		"victimDamageDealt": []map[string]any{
			{"basic": false, "magicDamage": 120, "name": "Ahri", "participantId": 6, "physicalDamage": 0,
				"spellName": "ahriorbofdeception", "spellSlot": 0, "trueDamage": 40, "type": "OTHER"},
		},
		"victimDamageReceived": []map[string]any{
			{"basic": true, "magicDamage": 0, "name": "Zed", "participantId": 1, "physicalDamage": 310,
				"spellName": "zedbasicattack", "spellSlot": 64, "trueDamage": 0, "type": "OTHER"},
			{"basic": false, "magicDamage": 0, "name": "Zed", "participantId": 1, "physicalDamage": 220,
				"spellName": "zedq", "spellSlot": 0, "trueDamage": 0, "type": "OTHER"},
		},
	},
}

// SampleEvents returns one raw event per accepted tag, in tag order, with
// timestamps increasing from start.
func SampleEvents(start int64) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(schema.KnownEventTypes()))
	for i, tag := range schema.KnownEventTypes() {
		out = append(out, Event(tag, start+int64(i)*10, SampleEventFields[tag]))
	}
	return out
}

func MatchJSON(payload schema.MatchPayload) []byte {
	return mustMarshal(payload)
}

func TimelineJSON(payload schema.TimelinePayload) []byte {
	return mustMarshal(payload)
}

func mustMarshal(v any) []byte {
	raw, err := sonic.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal fixture: %v", err))
	}
	return raw
}
