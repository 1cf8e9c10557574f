package postgres

import "github.com/lib/pq"

type timelineInsertModel struct {
	MatchID       int64 `db:"match_id"`
	FrameInterval int64 `db:"frame_interval"`
}

type frameInsertModel struct {
	TimelineID int64 `db:"timeline_id"`
	FrameIndex int   `db:"frame_index"`
	Timestamp  int64 `db:"timestamp"`
}

type frameKeyRow struct {
	ID         int64 `db:"id"`
	FrameIndex int   `db:"frame_index"`
}

type participantFrameInsertModel struct {
	FrameID                  int64 `db:"frame_id"`
	ParticipantIndex         int   `db:"participant_index"`
	CurrentGold              int   `db:"current_gold"`
	GoldPerSecond            int   `db:"gold_per_second"`
	JungleMinionsKilled      int   `db:"jungle_minions_killed"`
	Level                    int   `db:"level"`
	MinionsKilled            int   `db:"minions_killed"`
	TimeEnemySpentControlled int   `db:"time_enemy_spent_controlled"`
	TotalGold                int   `db:"total_gold"`
	XP                       int   `db:"xp"`
	PositionX                int   `db:"position_x"`
	PositionY                int   `db:"position_y"`
	ChampionStatsColumns
	DamageStatsColumns
}

type eventInsertModel struct {
	FrameID       int64  `db:"frame_id"`
	EventIndex    int    `db:"event_index"`
	Type          string `db:"type"`
	Timestamp     int64  `db:"timestamp"`
	RealTimestamp int64  `db:"real_timestamp"`

	ParticipantID    *int64 `db:"participant_id"`
	CreatorID        *int64 `db:"creator_id"`
	KillerID         *int64 `db:"killer_id"`
	KillerTeamID     *int64 `db:"killer_team_id"`
	VictimID         *int64 `db:"victim_id"`
	TeamID           *int64 `db:"team_id"`
	ItemID           *int64 `db:"item_id"`
	BeforeID         *int64 `db:"before_id"`
	AfterID          *int64 `db:"after_id"`
	GoldGain         *int64 `db:"gold_gain"`
	SkillSlot        *int64 `db:"skill_slot"`
	Level            *int64 `db:"level"`
	MultiKillLength  *int64 `db:"multi_kill_length"`
	Bounty           *int64 `db:"bounty"`
	ShutdownBounty   *int64 `db:"shutdown_bounty"`
	KillStreakLength *int64 `db:"kill_streak_length"`
	GameID           *int64 `db:"game_id"`
	WinningTeam      *int64 `db:"winning_team"`
	PositionX        *int64 `db:"position_x"`
	PositionY        *int64 `db:"position_y"`

	LevelUpType    *string `db:"level_up_type"`
	WardType       *string `db:"ward_type"`
	KillType       *string `db:"kill_type"`
	MonsterType    *string `db:"monster_type"`
	MonsterSubType *string `db:"monster_sub_type"`
	BuildingType   *string `db:"building_type"`
	LaneType       *string `db:"lane_type"`
	TowerType      *string `db:"tower_type"`

	AssistingParticipantIDs pq.Int64Array `db:"assisting_participant_ids"`
}

type eventKeyRow struct {
	ID         int64 `db:"id"`
	FrameID    int64 `db:"frame_id"`
	EventIndex int   `db:"event_index"`
}

type victimDamageInsertModel struct {
	EventID        int64  `db:"event_id"`
	Direction      string `db:"direction"`
	Seq            int    `db:"seq"`
	Basic          bool   `db:"basic"`
	MagicDamage    int64  `db:"magic_damage"`
	PhysicalDamage int64  `db:"physical_damage"`
	TrueDamage     int64  `db:"true_damage"`
	Name           string `db:"name"`
	ParticipantID  int64  `db:"participant_id"`
	SpellName      string `db:"spell_name"`
	SpellSlot      int64  `db:"spell_slot"`
	Type           string `db:"type"`
}

type ChampionStatsColumns struct {
	AbilityHaste         int `db:"ability_haste"`
	AbilityPower         int `db:"ability_power"`
	Armor                int `db:"armor"`
	ArmorPen             int `db:"armor_pen"`
	ArmorPenPercent      int `db:"armor_pen_percent"`
	AttackDamage         int `db:"attack_damage"`
	AttackSpeed          int `db:"attack_speed"`
	BonusArmorPenPercent int `db:"bonus_armor_pen_percent"`
	BonusMagicPenPercent int `db:"bonus_magic_pen_percent"`
	CcReduction          int `db:"cc_reduction"`
	CooldownReduction    int `db:"cooldown_reduction"`
	Health               int `db:"health"`
	HealthMax            int `db:"health_max"`
	HealthRegen          int `db:"health_regen"`
	Lifesteal            int `db:"lifesteal"`
	MagicPen             int `db:"magic_pen"`
	MagicPenPercent      int `db:"magic_pen_percent"`
	MagicResist          int `db:"magic_resist"`
	MovementSpeed        int `db:"movement_speed"`
	Omnivamp             int `db:"omnivamp"`
	PhysicalVamp         int `db:"physical_vamp"`
	Power                int `db:"power"`
	PowerMax             int `db:"power_max"`
	PowerRegen           int `db:"power_regen"`
	SpellVamp            int `db:"spell_vamp"`
}

type DamageStatsColumns struct {
	MagicDamageDone               int `db:"magic_damage_done"`
	MagicDamageDoneToChampions    int `db:"magic_damage_done_to_champions"`
	MagicDamageTaken              int `db:"magic_damage_taken"`
	PhysicalDamageDone            int `db:"physical_damage_done"`
	PhysicalDamageDoneToChampions int `db:"physical_damage_done_to_champions"`
	PhysicalDamageTaken           int `db:"physical_damage_taken"`
	TotalDamageDone               int `db:"total_damage_done"`
	TotalDamageDoneToChampions    int `db:"total_damage_done_to_champions"`
	TotalDamageTaken              int `db:"total_damage_taken"`
	TrueDamageDone                int `db:"true_damage_done"`
	TrueDamageDoneToChampions     int `db:"true_damage_done_to_champions"`
	TrueDamageTaken               int `db:"true_damage_taken"`
}
