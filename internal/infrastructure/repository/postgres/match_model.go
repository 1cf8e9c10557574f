package postgres

import "time"

type matchInsertModel struct {
	ExternalID   string `db:"external_id"`
	GameCreation int64  `db:"game_creation"`
	GameDuration int64  `db:"game_duration"`
	QueueID      int    `db:"queue_id"`
	PlatformID   string `db:"platform_id"`
	Region       string `db:"region"`
	GameMode     string `db:"game_mode"`
	GameType     string `db:"game_type"`
	MapID        int    `db:"map_id"`
	GameVersion  string `db:"game_version"`
	Major        int    `db:"major"`
	Minor        int    `db:"minor"`
	Patch        int    `db:"patch"`
	Build        int    `db:"build"`
}

type matchTableModel struct {
	ID int64 `db:"id"`
	matchInsertModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type matchKeyRow struct {
	ID         int64  `db:"id"`
	ExternalID string `db:"external_id"`
}

type participantInsertModel struct {
	MatchID            int64  `db:"match_id"`
	ParticipantIndex   int    `db:"participant_index"`
	PUUID              string `db:"puuid"`
	RiotIDGameName     string `db:"riot_id_game_name"`
	RiotIDTagline      string `db:"riot_id_tagline"`
	SummonerName       string `db:"summoner_name"`
	ChampionID         int    `db:"champion_id"`
	ChampionName       string `db:"champion_name"`
	Summoner1ID        int    `db:"summoner1_id"`
	Summoner2ID        int    `db:"summoner2_id"`
	TeamID             int    `db:"team_id"`
	TeamPosition       string `db:"team_position"`
	IndividualPosition string `db:"individual_position"`
	Lane               string `db:"lane"`
	Role               string `db:"role"`
	Win                bool   `db:"win"`
}

type participantKeyRow struct {
	ID               int64 `db:"id"`
	MatchID          int64 `db:"match_id"`
	ParticipantIndex int   `db:"participant_index"`
}

type statsInsertModel struct {
	ParticipantID int64 `db:"participant_id"`
	StatsColumns
	StatPerkDefense int `db:"stat_perk_defense"`
	StatPerkFlex    int `db:"stat_perk_flex"`
	StatPerkOffense int `db:"stat_perk_offense"`
	PrimaryStyle    int `db:"primary_style"`
	SubStyle        int `db:"sub_style"`
	Perk0           int `db:"perk0"`
	Perk1           int `db:"perk1"`
	Perk2           int `db:"perk2"`
	Perk3           int `db:"perk3"`
	Perk4           int `db:"perk4"`
	Perk5           int `db:"perk5"`
}

type teamInsertModel struct {
	MatchID         int64 `db:"match_id"`
	TeamID          int   `db:"team_id"`
	Win             bool  `db:"win"`
	AtakhanFirst    bool  `db:"atakhan_first"`
	AtakhanKills    int   `db:"atakhan_kills"`
	BaronFirst      bool  `db:"baron_first"`
	BaronKills      int   `db:"baron_kills"`
	ChampionFirst   bool  `db:"champion_first"`
	ChampionKills   int   `db:"champion_kills"`
	DragonFirst     bool  `db:"dragon_first"`
	DragonKills     int   `db:"dragon_kills"`
	HordeFirst      bool  `db:"horde_first"`
	HordeKills      int   `db:"horde_kills"`
	InhibitorFirst  bool  `db:"inhibitor_first"`
	InhibitorKills  int   `db:"inhibitor_kills"`
	RiftHeraldFirst bool  `db:"rift_herald_first"`
	RiftHeraldKills int   `db:"rift_herald_kills"`
	TowerFirst      bool  `db:"tower_first"`
	TowerKills      int   `db:"tower_kills"`
}

type teamKeyRow struct {
	ID      int64 `db:"id"`
	MatchID int64 `db:"match_id"`
	TeamID  int   `db:"team_id"`
}

type banInsertModel struct {
	TeamID     int64 `db:"team_id"`
	PickTurn   int   `db:"pick_turn"`
	ChampionID int   `db:"champion_id"`
}

type summonerInsertModel struct {
	PUUID    string `db:"puuid"`
	GameName string `db:"game_name"`
	Tagline  string `db:"tagline"`
	Region   string `db:"region"`
}

// StatsColumns mirrors match.Counters field for field so the two convert
// directly.
type StatsColumns struct {
	AllInPings                     int  `db:"all_in_pings"`
	AssistMePings                  int  `db:"assist_me_pings"`
	Assists                        int  `db:"assists"`
	BaronKills                     int  `db:"baron_kills"`
	BasicPings                     int  `db:"basic_pings"`
	BountyLevel                    int  `db:"bounty_level"`
	ChampExperience                int  `db:"champ_experience"`
	ChampLevel                     int  `db:"champ_level"`
	CommandPings                   int  `db:"command_pings"`
	ConsumablesPurchased           int  `db:"consumables_purchased"`
	DamageDealtToBuildings         int  `db:"damage_dealt_to_buildings"`
	DamageDealtToObjectives        int  `db:"damage_dealt_to_objectives"`
	DamageDealtToTurrets           int  `db:"damage_dealt_to_turrets"`
	DamageSelfMitigated            int  `db:"damage_self_mitigated"`
	DangerPings                    int  `db:"danger_pings"`
	Deaths                         int  `db:"deaths"`
	DetectorWardsPlaced            int  `db:"detector_wards_placed"`
	DoubleKills                    int  `db:"double_kills"`
	DragonKills                    int  `db:"dragon_kills"`
	EnemyMissingPings              int  `db:"enemy_missing_pings"`
	EnemyVisionPings               int  `db:"enemy_vision_pings"`
	FirstBloodAssist               bool `db:"first_blood_assist"`
	FirstBloodKill                 bool `db:"first_blood_kill"`
	FirstTowerAssist               bool `db:"first_tower_assist"`
	FirstTowerKill                 bool `db:"first_tower_kill"`
	GameEndedInEarlySurrender      bool `db:"game_ended_in_early_surrender"`
	GameEndedInSurrender           bool `db:"game_ended_in_surrender"`
	GetBackPings                   int  `db:"get_back_pings"`
	GoldEarned                     int  `db:"gold_earned"`
	GoldSpent                      int  `db:"gold_spent"`
	HoldPings                      int  `db:"hold_pings"`
	InhibitorKills                 int  `db:"inhibitor_kills"`
	InhibitorsLost                 int  `db:"inhibitors_lost"`
	InhibitorTakedowns             int  `db:"inhibitor_takedowns"`
	Item0                          int  `db:"item0"`
	Item1                          int  `db:"item1"`
	Item2                          int  `db:"item2"`
	Item3                          int  `db:"item3"`
	Item4                          int  `db:"item4"`
	Item5                          int  `db:"item5"`
	Item6                          int  `db:"item6"`
	ItemsPurchased                 int  `db:"items_purchased"`
	KillingSprees                  int  `db:"killing_sprees"`
	Kills                          int  `db:"kills"`
	LargestCriticalStrike          int  `db:"largest_critical_strike"`
	LargestKillingSpree            int  `db:"largest_killing_spree"`
	LargestMultiKill               int  `db:"largest_multi_kill"`
	LongestTimeSpentLiving         int  `db:"longest_time_spent_living"`
	MagicDamageDealt               int  `db:"magic_damage_dealt"`
	MagicDamageDealtToChampions    int  `db:"magic_damage_dealt_to_champions"`
	MagicDamageTaken               int  `db:"magic_damage_taken"`
	NeedVisionPings                int  `db:"need_vision_pings"`
	NeutralMinionsKilled           int  `db:"neutral_minions_killed"`
	NexusKills                     int  `db:"nexus_kills"`
	NexusLost                      int  `db:"nexus_lost"`
	NexusTakedowns                 int  `db:"nexus_takedowns"`
	ObjectivesStolen               int  `db:"objectives_stolen"`
	ObjectivesStolenAssists        int  `db:"objectives_stolen_assists"`
	OnMyWayPings                   int  `db:"on_my_way_pings"`
	PentaKills                     int  `db:"penta_kills"`
	PhysicalDamageDealt            int  `db:"physical_damage_dealt"`
	PhysicalDamageDealtToChampions int  `db:"physical_damage_dealt_to_champions"`
	PhysicalDamageTaken            int  `db:"physical_damage_taken"`
	PushPings                      int  `db:"push_pings"`
	QuadraKills                    int  `db:"quadra_kills"`
	SightWardsBoughtInGame         int  `db:"sight_wards_bought_in_game"`
	Spell1Casts                    int  `db:"spell1_casts"`
	Spell2Casts                    int  `db:"spell2_casts"`
	Spell3Casts                    int  `db:"spell3_casts"`
	Spell4Casts                    int  `db:"spell4_casts"`
	Summoner1Casts                 int  `db:"summoner1_casts"`
	Summoner2Casts                 int  `db:"summoner2_casts"`
	TeamEarlySurrendered           bool `db:"team_early_surrendered"`
	TimeCCingOthers                int  `db:"time_ccing_others"`
	TimePlayed                     int  `db:"time_played"`
	TotalAllyJungleMinionsKilled   int  `db:"total_ally_jungle_minions_killed"`
	TotalDamageDealt               int  `db:"total_damage_dealt"`
	TotalDamageDealtToChampions    int  `db:"total_damage_dealt_to_champions"`
	TotalDamageShieldedOnTeammates int  `db:"total_damage_shielded_on_teammates"`
	TotalDamageTaken               int  `db:"total_damage_taken"`
	TotalEnemyJungleMinionsKilled  int  `db:"total_enemy_jungle_minions_killed"`
	TotalHeal                      int  `db:"total_heal"`
	TotalHealsOnTeammates          int  `db:"total_heals_on_teammates"`
	TotalMinionsKilled             int  `db:"total_minions_killed"`
	TotalTimeCCDealt               int  `db:"total_time_cc_dealt"`
	TotalTimeSpentDead             int  `db:"total_time_spent_dead"`
	TotalUnitsHealed               int  `db:"total_units_healed"`
	TripleKills                    int  `db:"triple_kills"`
	TrueDamageDealt                int  `db:"true_damage_dealt"`
	TrueDamageDealtToChampions     int  `db:"true_damage_dealt_to_champions"`
	TrueDamageTaken                int  `db:"true_damage_taken"`
	TurretKills                    int  `db:"turret_kills"`
	TurretsLost                    int  `db:"turrets_lost"`
	TurretTakedowns                int  `db:"turret_takedowns"`
	UnrealKills                    int  `db:"unreal_kills"`
	VisionClearedPings             int  `db:"vision_cleared_pings"`
	VisionScore                    int  `db:"vision_score"`
	VisionWardsBoughtInGame        int  `db:"vision_wards_bought_in_game"`
	WardsKilled                    int  `db:"wards_killed"`
	WardsPlaced                    int  `db:"wards_placed"`
}
