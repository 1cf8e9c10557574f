package timeline

// ChampionStats is the derived champion state captured in a frame.
type ChampionStats struct {
	AbilityHaste         int
	AbilityPower         int
	Armor                int
	ArmorPen             int
	ArmorPenPercent      int
	AttackDamage         int
	AttackSpeed          int
	BonusArmorPenPercent int
	BonusMagicPenPercent int
	CcReduction          int
	CooldownReduction    int
	Health               int
	HealthMax            int
	HealthRegen          int
	Lifesteal            int
	MagicPen             int
	MagicPenPercent      int
	MagicResist          int
	MovementSpeed        int
	Omnivamp             int
	PhysicalVamp         int
	Power                int
	PowerMax             int
	PowerRegen           int
	SpellVamp            int
}

type DamageStats struct {
	MagicDamageDone               int
	MagicDamageDoneToChampions    int
	MagicDamageTaken              int
	PhysicalDamageDone            int
	PhysicalDamageDoneToChampions int
	PhysicalDamageTaken           int
	TotalDamageDone               int
	TotalDamageDoneToChampions    int
	TotalDamageTaken              int
	TrueDamageDone                int
	TrueDamageDoneToChampions     int
	TrueDamageTaken               int
}
