package schema

import "sort"

const (
	EventWardPlaced           = "WARD_PLACED"
	EventWardKill             = "WARD_KILL"
	EventItemPurchased        = "ITEM_PURCHASED"
	EventItemDestroyed        = "ITEM_DESTROYED"
	EventItemSold             = "ITEM_SOLD"
	EventItemUndo             = "ITEM_UNDO"
	EventSkillLevelUp         = "SKILL_LEVEL_UP"
	EventLevelUp              = "LEVEL_UP"
	EventChampionSpecialKill  = "CHAMPION_SPECIAL_KILL"
	EventTurretPlateDestroyed = "TURRET_PLATE_DESTROYED"
	EventEliteMonsterKill     = "ELITE_MONSTER_KILL"
	EventBuildingKill         = "BUILDING_KILL"
	EventGameEnd              = "GAME_END"
	EventChampionKill         = "CHAMPION_KILL"
)

// Tags the upstream emits that carry nothing worth persisting. They decode
// into IgnoredEvent so they are never mistaken for schema drift.
const (
	EventPauseStart              = "PAUSE_START"
	EventPauseEnd                = "PAUSE_END"
	EventObjectiveBountyPrestart = "OBJECTIVE_BOUNTY_PRESTART"
	EventObjectiveBountyFinish   = "OBJECTIVE_BOUNTY_FINISH"
	EventDragonSoulGiven         = "DRAGON_SOUL_GIVEN"
	EventChampionTransform       = "CHAMPION_TRANSFORM"
	EventFeatUpdate              = "FEAT_UPDATE"
)

// Event is the closed set of timeline event variants. Only types in this
// package satisfy it.
type Event interface {
	EventType() string
	EventTimestamp() int64
	Header() EventHeader
	isEvent()
}

// EventHeader is shared by every variant; Type is the discriminator.
type EventHeader struct {
	Type          string `json:"type" validate:"required"`
	Timestamp     int64  `json:"timestamp" validate:"gte=0"`
	RealTimestamp int64  `json:"realTimestamp"`
}

func (h EventHeader) EventType() string     { return h.Type }
func (h EventHeader) EventTimestamp() int64 { return h.Timestamp }
func (h EventHeader) Header() EventHeader   { return h }
func (EventHeader) isEvent()                {}

type WardPlacedEvent struct {
	EventHeader
	CreatorID int64  `json:"creatorId" validate:"gte=0"`
	WardType  string `json:"wardType"`
}

type WardKillEvent struct {
	EventHeader
	KillerID int64  `json:"killerId" validate:"gte=0"`
	WardType string `json:"wardType"`
}

type ItemPurchasedEvent struct {
	EventHeader
	ParticipantID int64 `json:"participantId" validate:"gte=0"`
	ItemID        int64 `json:"itemId"`
}

type ItemDestroyedEvent struct {
	EventHeader
	ParticipantID int64 `json:"participantId" validate:"gte=0"`
	ItemID        int64 `json:"itemId"`
}

type ItemSoldEvent struct {
	EventHeader
	ParticipantID int64 `json:"participantId" validate:"gte=0"`
	ItemID        int64 `json:"itemId"`
}

type ItemUndoEvent struct {
	EventHeader
	ParticipantID int64 `json:"participantId" validate:"gte=0"`
	BeforeID      int64 `json:"beforeId"`
	AfterID       int64 `json:"afterId"`
	GoldGain      int64 `json:"goldGain"`
}

type SkillLevelUpEvent struct {
	EventHeader
	ParticipantID int64  `json:"participantId" validate:"gte=0"`
	SkillSlot     int64  `json:"skillSlot"`
	LevelUpType   string `json:"levelUpType"`
}

type LevelUpEvent struct {
	EventHeader
	ParticipantID int64 `json:"participantId" validate:"gte=0"`
	Level         int64 `json:"level"`
}

type ChampionSpecialKillEvent struct {
	EventHeader
	KillType        string          `json:"killType"`
	KillerID        int64           `json:"killerId" validate:"gte=0"`
	MultiKillLength int64           `json:"multiKillLength"`
	Position        PositionPayload `json:"position"`
}

type TurretPlateDestroyedEvent struct {
	EventHeader
	KillerID int64           `json:"killerId" validate:"gte=0"`
	LaneType string          `json:"laneType"`
	TeamID   int64           `json:"teamId"`
	Position PositionPayload `json:"position"`
}

type EliteMonsterKillEvent struct {
	EventHeader
	KillerID                int64           `json:"killerId" validate:"gte=0"`
	KillerTeamID            int64           `json:"killerTeamId"`
	MonsterType             string          `json:"monsterType"`
	MonsterSubType          string          `json:"monsterSubType"`
	Bounty                  int64           `json:"bounty"`
	AssistingParticipantIDs []int64         `json:"assistingParticipantIds"`
	Position                PositionPayload `json:"position"`
}

type BuildingKillEvent struct {
	EventHeader
	KillerID                int64           `json:"killerId" validate:"gte=0"`
	TeamID                  int64           `json:"teamId"`
	BuildingType            string          `json:"buildingType"`
	LaneType                string          `json:"laneType"`
	TowerType               string          `json:"towerType"`
	Bounty                  int64           `json:"bounty"`
	AssistingParticipantIDs []int64         `json:"assistingParticipantIds"`
	Position                PositionPayload `json:"position"`
}

type GameEndEvent struct {
	EventHeader
	GameID      int64 `json:"gameId"`
	WinningTeam int64 `json:"winningTeam"`
}

type ChampionKillEvent struct {
	EventHeader
	KillerID                int64                 `json:"killerId" validate:"gte=0"`
	VictimID                int64                 `json:"victimId" validate:"gte=0"`
	Bounty                  int64                 `json:"bounty"`
	ShutdownBounty          int64                 `json:"shutdownBounty"`
	KillStreakLength        int64                 `json:"killStreakLength"`
	AssistingParticipantIDs []int64               `json:"assistingParticipantIds"`
	Position                PositionPayload       `json:"position"`
	VictimDamageDealt       []VictimDamagePayload `json:"victimDamageDealt" validate:"dive"`
	VictimDamageReceived    []VictimDamagePayload `json:"victimDamageReceived" validate:"dive"`
}

// VictimDamagePayload is one line of the kill recap.
type VictimDamagePayload struct {
	Basic          bool   `json:"basic"`
	MagicDamage    int64  `json:"magicDamage"`
	Name           string `json:"name"`
	ParticipantID  int64  `json:"participantId" validate:"gte=0"`
	PhysicalDamage int64  `json:"physicalDamage"`
	SpellName      string `json:"spellName"`
	SpellSlot      int64  `json:"spellSlot"`
	TrueDamage     int64  `json:"trueDamage"`
	Type           string `json:"type"`
}

// IgnoredEvent stands in for acknowledged tags that are not persisted.
type IgnoredEvent struct {
	EventHeader
}

var eventFactories = newEventRegistry()

func newEventRegistry() map[string]func() Event {
	registry := map[string]func() Event{
		EventWardPlaced:           func() Event { return &WardPlacedEvent{} },
		EventWardKill:             func() Event { return &WardKillEvent{} },
		EventItemPurchased:        func() Event { return &ItemPurchasedEvent{} },
		EventItemDestroyed:        func() Event { return &ItemDestroyedEvent{} },
		EventItemSold:             func() Event { return &ItemSoldEvent{} },
		EventItemUndo:             func() Event { return &ItemUndoEvent{} },
		EventSkillLevelUp:         func() Event { return &SkillLevelUpEvent{} },
		EventLevelUp:              func() Event { return &LevelUpEvent{} },
		EventChampionSpecialKill:  func() Event { return &ChampionSpecialKillEvent{} },
		EventTurretPlateDestroyed: func() Event { return &TurretPlateDestroyedEvent{} },
		EventEliteMonsterKill:     func() Event { return &EliteMonsterKillEvent{} },
		EventBuildingKill:         func() Event { return &BuildingKillEvent{} },
		EventGameEnd:              func() Event { return &GameEndEvent{} },
		EventChampionKill:         func() Event { return &ChampionKillEvent{} },
	}
	for _, tag := range ignoredEventTypes {
		registry[tag] = func() Event { return &IgnoredEvent{} }
	}
	return registry
}

var ignoredEventTypes = []string{
	EventPauseStart,
	EventPauseEnd,
	EventObjectiveBountyPrestart,
	EventObjectiveBountyFinish,
	EventDragonSoulGiven,
	EventChampionTransform,
	EventFeatUpdate,
}

// KnownEventTypes lists every tag the decoder accepts, sorted.
func KnownEventTypes() []string {
	out := make([]string, 0, len(eventFactories))
	for tag := range eventFactories {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// IsIgnoredEventType reports whether tag decodes but is never persisted.
func IsIgnoredEventType(tag string) bool {
	for _, ignored := range ignoredEventTypes {
		if ignored == tag {
			return true
		}
	}
	return false
}

// NewEvent returns an empty variant for tag, or false when the tag is unknown.
func NewEvent(tag string) (Event, bool) {
	factory, ok := eventFactories[tag]
	if !ok {
		return nil, false
	}
	return factory(), true
}
