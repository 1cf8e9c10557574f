package match

// Counters are the flat end-of-game performance counters of a participant.
type Counters struct {
	AllInPings                     int
	AssistMePings                  int
	Assists                        int
	BaronKills                     int
	BasicPings                     int
	BountyLevel                    int
	ChampExperience                int
	ChampLevel                     int
	CommandPings                   int
	ConsumablesPurchased           int
	DamageDealtToBuildings         int
	DamageDealtToObjectives        int
	DamageDealtToTurrets           int
	DamageSelfMitigated            int
	DangerPings                    int
	Deaths                         int
	DetectorWardsPlaced            int
	DoubleKills                    int
	DragonKills                    int
	EnemyMissingPings              int
	EnemyVisionPings               int
	FirstBloodAssist               bool
	FirstBloodKill                 bool
	FirstTowerAssist               bool
	FirstTowerKill                 bool
	GameEndedInEarlySurrender      bool
	GameEndedInSurrender           bool
	GetBackPings                   int
	GoldEarned                     int
	GoldSpent                      int
	HoldPings                      int
	InhibitorKills                 int
	InhibitorsLost                 int
	InhibitorTakedowns             int
	Item0                          int
	Item1                          int
	Item2                          int
	Item3                          int
	Item4                          int
	Item5                          int
	Item6                          int
	ItemsPurchased                 int
	KillingSprees                  int
	Kills                          int
	LargestCriticalStrike          int
	LargestKillingSpree            int
	LargestMultiKill               int
	LongestTimeSpentLiving         int
	MagicDamageDealt               int
	MagicDamageDealtToChampions    int
	MagicDamageTaken               int
	NeedVisionPings                int
	NeutralMinionsKilled           int
	NexusKills                     int
	NexusLost                      int
	NexusTakedowns                 int
	ObjectivesStolen               int
	ObjectivesStolenAssists        int
	OnMyWayPings                   int
	PentaKills                     int
	PhysicalDamageDealt            int
	PhysicalDamageDealtToChampions int
	PhysicalDamageTaken            int
	PushPings                      int
	QuadraKills                    int
	SightWardsBoughtInGame         int
	Spell1Casts                    int
	Spell2Casts                    int
	Spell3Casts                    int
	Spell4Casts                    int
	Summoner1Casts                 int
	Summoner2Casts                 int
	TeamEarlySurrendered           bool
	TimeCCingOthers                int
	TimePlayed                     int
	TotalAllyJungleMinionsKilled   int
	TotalDamageDealt               int
	TotalDamageDealtToChampions    int
	TotalDamageShieldedOnTeammates int
	TotalDamageTaken               int
	TotalEnemyJungleMinionsKilled  int
	TotalHeal                      int
	TotalHealsOnTeammates          int
	TotalMinionsKilled             int
	TotalTimeCCDealt               int
	TotalTimeSpentDead             int
	TotalUnitsHealed               int
	TripleKills                    int
	TrueDamageDealt                int
	TrueDamageDealtToChampions     int
	TrueDamageTaken                int
	TurretKills                    int
	TurretsLost                    int
	TurretTakedowns                int
	UnrealKills                    int
	VisionClearedPings             int
	VisionScore                    int
	VisionWardsBoughtInGame        int
	WardsKilled                    int
	WardsPlaced                    int
}
