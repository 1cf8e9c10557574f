package feed

import "context"

// Repository exposes follow read operations.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]Follow, error)
}
