package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-match-history/internal/domain/feed"
	qb "github.com/riskibarqy/lol-match-history/internal/platform/querybuilder"
)

type followTableModel struct {
	UserID int64  `db:"user_id"`
	PUUID  string `db:"puuid"`
	Region string `db:"region"`
}

type FeedRepository struct {
	db *sqlx.DB
}

func NewFeedRepository(db *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

func (r *FeedRepository) ListByUser(ctx context.Context, userID int64) ([]feed.Follow, error) {
	query, args, err := qb.Select("user_id", "puuid", "region").From("summoner_follows").
		Where(qb.Eq("user_id", userID)).
		OrderBy("puuid").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select follows by user query: %w", err)
	}

	var rows []followTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select follows by user: %w", err)
	}

	out := make([]feed.Follow, 0, len(rows))
	for _, row := range rows {
		out = append(out, feed.Follow{
			UserID: row.UserID,
			PUUID:  row.PUUID,
			Region: row.Region,
		})
	}
	return out, nil
}
