package match

import "strings"

const tutorialModePrefix = "TUTORIAL"

// Match is the aggregate root of an imported game.
type Match struct {
	ID           int64
	ExternalID   string
	GameCreation int64 // epoch ms
	GameDuration int64 // seconds
	QueueID      int
	PlatformID   string
	Region       string
	GameMode     string
	GameType     string
	MapID        int
	GameVersion  string
	Major        int
	Minor        int
	Patch        int
	Build        int
}

// Participant identity fields are immutable once stored; only ChampionID is
// refreshed on re-import.
type Participant struct {
	ID                 int64
	MatchID            int64
	ParticipantIndex   int
	PUUID              string
	RiotIDGameName     string
	RiotIDTagline      string
	SummonerName       string
	ChampionID         int
	ChampionName       string
	Summoner1ID        int
	Summoner2ID        int
	TeamID             int
	TeamPosition       string
	IndividualPosition string
	Lane               string
	Role               string
	Win                bool
}

// Stats is written once per participant and never updated.
type Stats struct {
	ID            int64
	ParticipantID int64
	Counters
	StatPerkDefense int
	StatPerkFlex    int
	StatPerkOffense int
	PrimaryStyle    int
	SubStyle        int
	Perk0           int
	Perk1           int
	Perk2           int
	Perk3           int
	Perk4           int
	Perk5           int
}

type Team struct {
	ID              int64
	MatchID         int64
	TeamID          int
	Win             bool
	AtakhanFirst    bool
	AtakhanKills    int
	BaronFirst      bool
	BaronKills      int
	ChampionFirst   bool
	ChampionKills   int
	DragonFirst     bool
	DragonKills     int
	HordeFirst      bool
	HordeKills      int
	InhibitorFirst  bool
	InhibitorKills  int
	RiftHeraldFirst bool
	RiftHeraldKills int
	TowerFirst      bool
	TowerKills      int
}

// Ban belongs to a team row. Side is the in-game team id (100/200) used to
// resolve TeamID once the team row exists.
type Ban struct {
	ID         int64
	TeamID     int64
	Side       int
	PickTurn   int
	ChampionID int
}

type Summoner struct {
	ID       int64
	PUUID    string
	GameName string
	Tagline  string
	Region   string
}

// Graph is everything one match payload produces, before ids are assigned.
type Graph struct {
	Match        Match
	Participants []ParticipantGraph
	Teams        []TeamGraph
	Summoners    []Summoner
}

type ParticipantGraph struct {
	Participant Participant
	Stats       Stats
}

type TeamGraph struct {
	Team Team
	Bans []Ban
}

// SaveResult counts rows touched by one SaveGraphs call. Ignored conflicts
// are not counted.
type SaveResult struct {
	Matches      int
	Participants int
	Stats        int
	Teams        int
	Bans         int
}

// IsTutorialMode reports game modes that are never persisted.
func IsTutorialMode(gameMode string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(gameMode)), tutorialModePrefix)
}

// Importable is false for tutorial and zero-duration games.
func (m Match) Importable() bool {
	return m.GameDuration > 0 && !IsTutorialMode(m.GameMode)
}
