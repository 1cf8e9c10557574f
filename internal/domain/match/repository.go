package match

import "context"

// Repository persists match graphs.
//
// SaveGraphs writes every graph inside one transaction: matches upsert on
// external id refreshing only the duration, participants upsert on
// (match, participant index) refreshing only the champion id, and stats,
// teams and bans are inserted with conflicts ignored.
type Repository interface {
	KnownExternalIDs(ctx context.Context, externalIDs []string) (map[string]struct{}, error)
	SaveGraphs(ctx context.Context, graphs []Graph) (SaveResult, error)
	GetByExternalID(ctx context.Context, externalID string) (Match, bool, error)
}

// SummonerRepository stores player identities referenced by participants.
type SummonerRepository interface {
	KnownPUUIDs(ctx context.Context, puuids []string) (map[string]struct{}, error)
	InsertIgnore(ctx context.Context, summoners []Summoner) (int, error)
}
