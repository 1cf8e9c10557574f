package schema

import "encoding/json"

// TimelinePayload is the match-v5 timeline response.
type TimelinePayload struct {
	Metadata TimelineMetadata `json:"metadata"`
	Info     TimelineInfo     `json:"info"`
}

type TimelineMetadata struct {
	DataVersion  string   `json:"dataVersion"`
	MatchID      string   `json:"matchId" validate:"required"`
	Participants []string `json:"participants"`
}

type TimelineInfo struct {
	EndOfGameResult string                `json:"endOfGameResult"`
	FrameInterval   int64                 `json:"frameInterval" validate:"gt=0"`
	GameID          int64                 `json:"gameId"`
	Frames          []FramePayload        `json:"frames" validate:"required,dive"`
	Participants    []TimelineParticipant `json:"participants" validate:"dive"`
}

type TimelineParticipant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid"`
}

// FramePayload is one snapshot. RawEvents is what arrives on the wire;
// Events is filled by the decoder once every event resolved to a variant.
type FramePayload struct {
	Timestamp         int64                              `json:"timestamp" validate:"gte=0"`
	ParticipantFrames map[string]ParticipantFramePayload `json:"participantFrames" validate:"dive"`
	RawEvents         []json.RawMessage                  `json:"events"`
	Events            []Event                            `json:"-"`
}

type ParticipantFramePayload struct {
	ParticipantID            int                  `json:"participantId" validate:"min=1,max=20"`
	ChampionStats            ChampionStatsPayload `json:"championStats"`
	CurrentGold              int                  `json:"currentGold"`
	DamageStats              DamageStatsPayload   `json:"damageStats"`
	GoldPerSecond            int                  `json:"goldPerSecond"`
	JungleMinionsKilled      int                  `json:"jungleMinionsKilled"`
	Level                    int                  `json:"level"`
	MinionsKilled            int                  `json:"minionsKilled"`
	Position                 PositionPayload      `json:"position"`
	TimeEnemySpentControlled int                  `json:"timeEnemySpentControlled"`
	TotalGold                int                  `json:"totalGold"`
	XP                       int                  `json:"xp"`
}

type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ChampionStatsPayload struct {
	AbilityHaste         int `json:"abilityHaste"`
	AbilityPower         int `json:"abilityPower"`
	Armor                int `json:"armor"`
	ArmorPen             int `json:"armorPen"`
	ArmorPenPercent      int `json:"armorPenPercent"`
	AttackDamage         int `json:"attackDamage"`
	AttackSpeed          int `json:"attackSpeed"`
	BonusArmorPenPercent int `json:"bonusArmorPenPercent"`
	BonusMagicPenPercent int `json:"bonusMagicPenPercent"`
	CcReduction          int `json:"ccReduction"`
	CooldownReduction    int `json:"cooldownReduction"`
	Health               int `json:"health"`
	HealthMax            int `json:"healthMax"`
	HealthRegen          int `json:"healthRegen"`
	Lifesteal            int `json:"lifesteal"`
	MagicPen             int `json:"magicPen"`
	MagicPenPercent      int `json:"magicPenPercent"`
	MagicResist          int `json:"magicResist"`
	MovementSpeed        int `json:"movementSpeed"`
	Omnivamp             int `json:"omnivamp"`
	PhysicalVamp         int `json:"physicalVamp"`
	Power                int `json:"power"`
	PowerMax             int `json:"powerMax"`
	PowerRegen           int `json:"powerRegen"`
	SpellVamp            int `json:"spellVamp"`
}

type DamageStatsPayload struct {
	MagicDamageDone               int `json:"magicDamageDone"`
	MagicDamageDoneToChampions    int `json:"magicDamageDoneToChampions"`
	MagicDamageTaken              int `json:"magicDamageTaken"`
	PhysicalDamageDone            int `json:"physicalDamageDone"`
	PhysicalDamageDoneToChampions int `json:"physicalDamageDoneToChampions"`
	PhysicalDamageTaken           int `json:"physicalDamageTaken"`
	TotalDamageDone               int `json:"totalDamageDone"`
	TotalDamageDoneToChampions    int `json:"totalDamageDoneToChampions"`
	TotalDamageTaken              int `json:"totalDamageTaken"`
	TrueDamageDone                int `json:"trueDamageDone"`
	TrueDamageDoneToChampions     int `json:"trueDamageDoneToChampions"`
	TrueDamageTaken               int `json:"trueDamageTaken"`
}
