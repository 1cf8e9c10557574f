package timeline

import "context"

// Repository stores advanced timelines. Save runs in a single transaction
// and returns the timeline id.
type Repository interface {
	ExistsForMatch(ctx context.Context, matchID int64) (bool, error)
	Save(ctx context.Context, timeline *AdvancedTimeline, overwrite bool) (int64, error)
}
