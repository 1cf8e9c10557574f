// Package builder maps decoded upstream payloads to persistence-ready
// records. Every function is pure and total over validated payloads.
package builder

import (
	"sort"
	"strings"

	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	"github.com/riskibarqy/lol-match-history/internal/schema"
)

// BuildMatch maps the match header. region is the platform the match was
// requested on; the payload platform id is used when it is empty.
func BuildMatch(p *schema.MatchPayload, region string) match.Match {
	version := ParseVersion(p.Info.GameVersion)
	return match.Match{
		ExternalID:   p.Metadata.MatchID,
		GameCreation: p.Info.GameCreation,
		GameDuration: p.Info.GameDuration,
		QueueID:      p.Info.QueueID,
		PlatformID:   p.Info.PlatformID,
		Region:       normalizeRegion(region, p.Info.PlatformID),
		GameMode:     p.Info.GameMode,
		GameType:     p.Info.GameType,
		MapID:        p.Info.MapID,
		GameVersion:  p.Info.GameVersion,
		Major:        version.Major,
		Minor:        version.Minor,
		Patch:        version.Patch,
		Build:        version.Build,
	}
}

func BuildParticipant(p schema.ParticipantPayload) (match.Participant, match.Stats) {
	participant := match.Participant{
		ParticipantIndex:   p.ParticipantID,
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
	}

	stats := match.Stats{
		Counters:        match.Counters(p.ParticipantStatsPayload),
		StatPerkDefense: p.Perks.StatPerks.Defense,
		StatPerkFlex:    p.Perks.StatPerks.Flex,
		StatPerkOffense: p.Perks.StatPerks.Offense,
	}
	if len(p.Perks.Styles) > 0 {
		primary := p.Perks.Styles[0]
		stats.PrimaryStyle = primary.Style
		stats.Perk0 = perkAt(primary, 0)
		stats.Perk1 = perkAt(primary, 1)
		stats.Perk2 = perkAt(primary, 2)
		stats.Perk3 = perkAt(primary, 3)
	}
	if len(p.Perks.Styles) > 1 {
		sub := p.Perks.Styles[1]
		stats.SubStyle = sub.Style
		stats.Perk4 = perkAt(sub, 0)
		stats.Perk5 = perkAt(sub, 1)
	}
	return participant, stats
}

func BuildTeam(t schema.TeamPayload) match.Team {
	o := t.Objectives
	return match.Team{
		TeamID:          t.TeamID,
		Win:             t.Win,
		AtakhanFirst:    o.Atakhan.First,
		AtakhanKills:    o.Atakhan.Kills,
		BaronFirst:      o.Baron.First,
		BaronKills:      o.Baron.Kills,
		ChampionFirst:   o.Champion.First,
		ChampionKills:   o.Champion.Kills,
		DragonFirst:     o.Dragon.First,
		DragonKills:     o.Dragon.Kills,
		HordeFirst:      o.Horde.First,
		HordeKills:      o.Horde.Kills,
		InhibitorFirst:  o.Inhibitor.First,
		InhibitorKills:  o.Inhibitor.Kills,
		RiftHeraldFirst: o.RiftHerald.First,
		RiftHeraldKills: o.RiftHerald.Kills,
		TowerFirst:      o.Tower.First,
		TowerKills:      o.Tower.Kills,
	}
}

// BuildBan links a ban to its team. team.ID is zero until the team row is
// stored; Side carries the in-game team id meanwhile.
func BuildBan(b schema.BanPayload, team match.Team) match.Ban {
	return match.Ban{
		TeamID:     team.ID,
		Side:       team.TeamID,
		PickTurn:   b.PickTurn,
		ChampionID: b.ChampionID,
	}
}

func BuildSummoner(p schema.ParticipantPayload, region string) match.Summoner {
	return match.Summoner{
		PUUID:    p.PUUID,
		GameName: p.RiotIDGameName,
		Tagline:  p.RiotIDTagline,
		Region:   region,
	}
}

// BuildMatchGraph builds the full record set of one payload. Participants
// are ordered by index and summoners are unique by puuid.
func BuildMatchGraph(p *schema.MatchPayload, region string) match.Graph {
	m := BuildMatch(p, region)
	graph := match.Graph{
		Match:        m,
		Participants: make([]match.ParticipantGraph, 0, len(p.Info.Participants)),
		Teams:        make([]match.TeamGraph, 0, len(p.Info.Teams)),
	}

	seen := make(map[string]struct{}, len(p.Info.Participants))
	for _, payload := range p.Info.Participants {
		participant, stats := BuildParticipant(payload)
		graph.Participants = append(graph.Participants, match.ParticipantGraph{Participant: participant, Stats: stats})

		if payload.PUUID == "" {
			continue
		}
		if _, ok := seen[payload.PUUID]; ok {
			continue
		}
		seen[payload.PUUID] = struct{}{}
		graph.Summoners = append(graph.Summoners, BuildSummoner(payload, m.Region))
	}
	sort.SliceStable(graph.Participants, func(i, j int) bool {
		return graph.Participants[i].Participant.ParticipantIndex < graph.Participants[j].Participant.ParticipantIndex
	})

	for _, payload := range p.Info.Teams {
		team := BuildTeam(payload)
		bans := make([]match.Ban, 0, len(payload.Bans))
		for _, ban := range payload.Bans {
			bans = append(bans, BuildBan(ban, team))
		}
		graph.Teams = append(graph.Teams, match.TeamGraph{Team: team, Bans: bans})
	}
	return graph
}

func perkAt(style schema.PerkStylePayload, i int) int {
	if i >= len(style.Selections) {
		return 0
	}
	return style.Selections[i].Perk
}

func normalizeRegion(region, platformID string) string {
	if value := strings.ToLower(strings.TrimSpace(region)); value != "" {
		return value
	}
	return strings.ToLower(strings.TrimSpace(platformID))
}
