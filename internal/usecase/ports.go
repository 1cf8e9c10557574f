package usecase

import "context"

// MaxMatchIDPageSize is the largest page the match-id listing serves.
const MaxMatchIDPageSize = 100

// MatchFetcher retrieves raw upstream payloads. Errors are one of the
// ErrUpstream* sentinels (wrapped) or a context error.
type MatchFetcher interface {
	FetchMatch(ctx context.Context, matchID, region string) ([]byte, error)
	FetchTimeline(ctx context.Context, matchID, region string) ([]byte, error)
	FetchMatchIDs(ctx context.Context, puuid, region string, query MatchIDQuery) ([]byte, error)
}

// MatchIDQuery is one page request of a player's match history, newest
// first. Zero values leave a filter unset.
type MatchIDQuery struct {
	Start     int
	Count     int
	Queue     int
	Type      string
	StartTime int64 // epoch seconds
	EndTime   int64 // epoch seconds
}
