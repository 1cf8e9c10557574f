package schema

// MatchPayload is the match-v5 "match by id" response.
type MatchPayload struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	DataVersion  string   `json:"dataVersion"`
	MatchID      string   `json:"matchId" validate:"required"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	EndOfGameResult    string               `json:"endOfGameResult"`
	GameCreation       int64                `json:"gameCreation" validate:"gte=0"`
	GameDuration       int64                `json:"gameDuration" validate:"gte=0"`
	GameEndTimestamp   int64                `json:"gameEndTimestamp"`
	GameID             int64                `json:"gameId"`
	GameMode           string               `json:"gameMode" validate:"required"`
	GameName           string               `json:"gameName"`
	GameStartTimestamp int64                `json:"gameStartTimestamp"`
	GameType           string               `json:"gameType"`
	GameVersion        string               `json:"gameVersion"`
	MapID              int                  `json:"mapId"`
	PlatformID         string               `json:"platformId"`
	QueueID            int                  `json:"queueId"`
	TournamentCode     string               `json:"tournamentCode"`
	Participants       []ParticipantPayload `json:"participants" validate:"required,min=1,max=20,unique=ParticipantID,dive"`
	Teams              []TeamPayload        `json:"teams" validate:"unique=TeamID,dive"`
}

// ParticipantPayload carries identity fields plus the flat end-of-game
// counters. Counters absent from the payload decode as zero.
type ParticipantPayload struct {
	ParticipantID               int    `json:"participantId" validate:"min=1,max=20"`
	PUUID                       string `json:"puuid"`
	SummonerID                  string `json:"summonerId"`
	SummonerName                string `json:"summonerName"`
	RiotIDGameName              string `json:"riotIdGameName"`
	RiotIDTagline               string `json:"riotIdTagline"`
	ProfileIcon                 int    `json:"profileIcon"`
	SummonerLevel               int    `json:"summonerLevel"`
	ChampionID                  int    `json:"championId" validate:"gte=0"`
	ChampionName                string `json:"championName"`
	ChampionTransform           int    `json:"championTransform"`
	Summoner1ID                 int    `json:"summoner1Id"`
	Summoner2ID                 int    `json:"summoner2Id"`
	TeamID                      int    `json:"teamId"`
	TeamPosition                string `json:"teamPosition"`
	IndividualPosition          string `json:"individualPosition"`
	Lane                        string `json:"lane"`
	Role                        string `json:"role"`
	Win                         bool   `json:"win"`
	PlayerSubteamID             int    `json:"playerSubteamId"`
	SubteamPlacement            int    `json:"subteamPlacement"`
	ParticipantStatsPayload
	Perks PerksPayload `json:"perks"`
}

type PerksPayload struct {
	StatPerks StatPerksPayload   `json:"statPerks"`
	Styles    []PerkStylePayload `json:"styles" validate:"dive"`
}

type StatPerksPayload struct {
	Defense int `json:"defense"`
	Flex    int `json:"flex"`
	Offense int `json:"offense"`
}

type PerkStylePayload struct {
	Description string                 `json:"description"`
	Style       int                    `json:"style"`
	Selections  []PerkSelectionPayload `json:"selections"`
}

type PerkSelectionPayload struct {
	Perk int `json:"perk"`
	Var1 int `json:"var1"`
	Var2 int `json:"var2"`
	Var3 int `json:"var3"`
}

type TeamPayload struct {
	TeamID     int               `json:"teamId" validate:"required"`
	Win        bool              `json:"win"`
	Bans       []BanPayload      `json:"bans" validate:"dive"`
	Objectives ObjectivesPayload `json:"objectives"`
}

type BanPayload struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn" validate:"gte=0"`
}

type ObjectivesPayload struct {
	Atakhan    ObjectivePayload `json:"atakhan"`
	Baron      ObjectivePayload `json:"baron"`
	Champion   ObjectivePayload `json:"champion"`
	Dragon     ObjectivePayload `json:"dragon"`
	Horde      ObjectivePayload `json:"horde"`
	Inhibitor  ObjectivePayload `json:"inhibitor"`
	RiftHerald ObjectivePayload `json:"riftHerald"`
	Tower      ObjectivePayload `json:"tower"`
}

type ObjectivePayload struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

// ParticipantStatsPayload holds the end-of-game counters, including the ping
// counters older payloads omit.
type ParticipantStatsPayload struct {
	AllInPings                     int  `json:"allInPings"`
	AssistMePings                  int  `json:"assistMePings"`
	Assists                        int  `json:"assists"`
	BaronKills                     int  `json:"baronKills"`
	BasicPings                     int  `json:"basicPings"`
	BountyLevel                    int  `json:"bountyLevel"`
	ChampExperience                int  `json:"champExperience"`
	ChampLevel                     int  `json:"champLevel"`
	CommandPings                   int  `json:"commandPings"`
	ConsumablesPurchased           int  `json:"consumablesPurchased"`
	DamageDealtToBuildings         int  `json:"damageDealtToBuildings"`
	DamageDealtToObjectives        int  `json:"damageDealtToObjectives"`
	DamageDealtToTurrets           int  `json:"damageDealtToTurrets"`
	DamageSelfMitigated            int  `json:"damageSelfMitigated"`
	DangerPings                    int  `json:"dangerPings"`
	Deaths                         int  `json:"deaths"`
	DetectorWardsPlaced            int  `json:"detectorWardsPlaced"`
	DoubleKills                    int  `json:"doubleKills"`
	DragonKills                    int  `json:"dragonKills"`
	EnemyMissingPings              int  `json:"enemyMissingPings"`
	EnemyVisionPings               int  `json:"enemyVisionPings"`
	FirstBloodAssist               bool `json:"firstBloodAssist"`
	FirstBloodKill                 bool `json:"firstBloodKill"`
	FirstTowerAssist               bool `json:"firstTowerAssist"`
	FirstTowerKill                 bool `json:"firstTowerKill"`
	GameEndedInEarlySurrender      bool `json:"gameEndedInEarlySurrender"`
	GameEndedInSurrender           bool `json:"gameEndedInSurrender"`
	GetBackPings                   int  `json:"getBackPings"`
	GoldEarned                     int  `json:"goldEarned"`
	GoldSpent                      int  `json:"goldSpent"`
	HoldPings                      int  `json:"holdPings"`
	InhibitorKills                 int  `json:"inhibitorKills"`
	InhibitorsLost                 int  `json:"inhibitorsLost"`
	InhibitorTakedowns             int  `json:"inhibitorTakedowns"`
	Item0                          int  `json:"item0"`
	Item1                          int  `json:"item1"`
	Item2                          int  `json:"item2"`
	Item3                          int  `json:"item3"`
	Item4                          int  `json:"item4"`
	Item5                          int  `json:"item5"`
	Item6                          int  `json:"item6"`
	ItemsPurchased                 int  `json:"itemsPurchased"`
	KillingSprees                  int  `json:"killingSprees"`
	Kills                          int  `json:"kills"`
	LargestCriticalStrike          int  `json:"largestCriticalStrike"`
	LargestKillingSpree            int  `json:"largestKillingSpree"`
	LargestMultiKill               int  `json:"largestMultiKill"`
	LongestTimeSpentLiving         int  `json:"longestTimeSpentLiving"`
	MagicDamageDealt               int  `json:"magicDamageDealt"`
	MagicDamageDealtToChampions    int  `json:"magicDamageDealtToChampions"`
	MagicDamageTaken               int  `json:"magicDamageTaken"`
	NeedVisionPings                int  `json:"needVisionPings"`
	NeutralMinionsKilled           int  `json:"neutralMinionsKilled"`
	NexusKills                     int  `json:"nexusKills"`
	NexusLost                      int  `json:"nexusLost"`
	NexusTakedowns                 int  `json:"nexusTakedowns"`
	ObjectivesStolen               int  `json:"objectivesStolen"`
	ObjectivesStolenAssists        int  `json:"objectivesStolenAssists"`
	OnMyWayPings                   int  `json:"onMyWayPings"`
	PentaKills                     int  `json:"pentaKills"`
	PhysicalDamageDealt            int  `json:"physicalDamageDealt"`
	PhysicalDamageDealtToChampions int  `json:"physicalDamageDealtToChampions"`
	PhysicalDamageTaken            int  `json:"physicalDamageTaken"`
	PushPings                      int  `json:"pushPings"`
	QuadraKills                    int  `json:"quadraKills"`
	SightWardsBoughtInGame         int  `json:"sightWardsBoughtInGame"`
	Spell1Casts                    int  `json:"spell1Casts"`
	Spell2Casts                    int  `json:"spell2Casts"`
	Spell3Casts                    int  `json:"spell3Casts"`
	Spell4Casts                    int  `json:"spell4Casts"`
	Summoner1Casts                 int  `json:"summoner1Casts"`
	Summoner2Casts                 int  `json:"summoner2Casts"`
	TeamEarlySurrendered           bool `json:"teamEarlySurrendered"`
	TimeCCingOthers                int  `json:"timeCCingOthers"`
	TimePlayed                     int  `json:"timePlayed"`
	TotalAllyJungleMinionsKilled   int  `json:"totalAllyJungleMinionsKilled"`
	TotalDamageDealt               int  `json:"totalDamageDealt"`
	TotalDamageDealtToChampions    int  `json:"totalDamageDealtToChampions"`
	TotalDamageShieldedOnTeammates int  `json:"totalDamageShieldedOnTeammates"`
	TotalDamageTaken               int  `json:"totalDamageTaken"`
	TotalEnemyJungleMinionsKilled  int  `json:"totalEnemyJungleMinionsKilled"`
	TotalHeal                      int  `json:"totalHeal"`
	TotalHealsOnTeammates          int  `json:"totalHealsOnTeammates"`
	TotalMinionsKilled             int  `json:"totalMinionsKilled"`
	TotalTimeCCDealt               int  `json:"totalTimeCCDealt"`
	TotalTimeSpentDead             int  `json:"totalTimeSpentDead"`
	TotalUnitsHealed               int  `json:"totalUnitsHealed"`
	TripleKills                    int  `json:"tripleKills"`
	TrueDamageDealt                int  `json:"trueDamageDealt"`
	TrueDamageDealtToChampions     int  `json:"trueDamageDealtToChampions"`
	TrueDamageTaken                int  `json:"trueDamageTaken"`
	TurretKills                    int  `json:"turretKills"`
	TurretsLost                    int  `json:"turretsLost"`
	TurretTakedowns                int  `json:"turretTakedowns"`
	UnrealKills                    int  `json:"unrealKills"`
	VisionClearedPings             int  `json:"visionClearedPings"`
	VisionScore                    int  `json:"visionScore"`
	VisionWardsBoughtInGame        int  `json:"visionWardsBoughtInGame"`
	WardsKilled                    int  `json:"wardsKilled"`
	WardsPlaced                    int  `json:"wardsPlaced"`
}
