package timeline

import "errors"

const (
	DirectionDealt    = "dealt"
	DirectionReceived = "received"
)

// ErrAlreadyExists is returned by Save when a timeline is already stored
// for the match and overwrite was not requested.
var ErrAlreadyExists = errors.New("advanced timeline already exists")

// AdvancedTimeline is written as a whole or not at all.
type AdvancedTimeline struct {
	ID              int64
	MatchID         int64
	ExternalMatchID string
	FrameInterval   int64 // ms
	Frames          []Frame
}

type Frame struct {
	ID                int64
	TimelineID        int64
	FrameIndex        int
	Timestamp         int64
	ParticipantFrames []ParticipantFrame
	Events            []EventRow
}

type ParticipantFrame struct {
	ID                       int64
	FrameID                  int64
	ParticipantIndex         int
	CurrentGold              int
	GoldPerSecond            int
	JungleMinionsKilled      int
	Level                    int
	MinionsKilled            int
	TimeEnemySpentControlled int
	TotalGold                int
	XP                       int
	PositionX                int
	PositionY                int
	ChampionStats
	DamageStats
}

// EventRow is the persisted shape shared by every event variant. Columns a
// variant does not carry stay nil.
type EventRow struct {
	ID            int64
	FrameID       int64
	EventIndex    int
	Type          string
	Timestamp     int64
	RealTimestamp int64

	ParticipantID    *int64
	CreatorID        *int64
	KillerID         *int64
	KillerTeamID     *int64
	VictimID         *int64
	TeamID           *int64
	ItemID           *int64
	BeforeID         *int64
	AfterID          *int64
	GoldGain         *int64
	SkillSlot        *int64
	Level            *int64
	MultiKillLength  *int64
	Bounty           *int64
	ShutdownBounty   *int64
	KillStreakLength *int64
	GameID           *int64
	WinningTeam      *int64
	PositionX        *int64
	PositionY        *int64

	LevelUpType    *string
	WardType       *string
	KillType       *string
	MonsterType    *string
	MonsterSubType *string
	BuildingType   *string
	LaneType       *string
	TowerType      *string

	AssistingParticipantIDs []int64
	VictimDamage            []VictimDamage
}

// VictimDamage is one kill-recap line of a champion kill.
type VictimDamage struct {
	ID             int64
	EventID        int64
	Direction      string
	Seq            int
	Basic          bool
	MagicDamage    int64
	PhysicalDamage int64
	TrueDamage     int64
	Name           string
	ParticipantID  int64
	SpellName      string
	SpellSlot      int64
	Type           string
}

// RowCounts summarises a timeline subtree.
type RowCounts struct {
	Frames            int
	ParticipantFrames int
	Events            int
	VictimDamage      int
}

func (t *AdvancedTimeline) Counts() RowCounts {
	var counts RowCounts
	if t == nil {
		return counts
	}
	counts.Frames = len(t.Frames)
	for _, frame := range t.Frames {
		counts.ParticipantFrames += len(frame.ParticipantFrames)
		counts.Events += len(frame.Events)
		for _, event := range frame.Events {
			counts.VictimDamage += len(event.VictimDamage)
		}
	}
	return counts
}
