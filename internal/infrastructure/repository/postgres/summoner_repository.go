package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/lol-match-history/internal/domain/match"
	qb "github.com/riskibarqy/lol-match-history/internal/platform/querybuilder"
)

type SummonerRepository struct {
	db *sqlx.DB
}

func NewSummonerRepository(db *sqlx.DB) *SummonerRepository {
	return &SummonerRepository{db: db}
}

func (r *SummonerRepository) KnownPUUIDs(ctx context.Context, puuids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(puuids))
	if len(puuids) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("puuid").From("summoners").
		Where(qb.Any("puuid", pq.Array(puuids))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select known summoners query: %w", err)
	}

	var known []string
	if err := r.db.SelectContext(ctx, &known, query, args...); err != nil {
		return nil, fmt.Errorf("select known summoners: %w", err)
	}
	for _, puuid := range known {
		out[puuid] = struct{}{}
	}
	return out, nil
}

// InsertIgnore inserts summoners, leaving rows another writer created first
// untouched.
func (r *SummonerRepository) InsertIgnore(ctx context.Context, summoners []match.Summoner) (int, error) {
	rows := make([]summonerInsertModel, 0, len(summoners))
	for _, item := range summoners {
		if item.PUUID == "" {
			continue
		}
		rows = append(rows, summonerInsertModel{
			PUUID:    item.PUUID,
			GameName: item.GameName,
			Tagline:  item.Tagline,
			Region:   item.Region,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PUUID < rows[j].PUUID })

	stmts, err := qb.InsertModels("summoners", rows, qb.OnConflictDoNothing("puuid"))
	if err != nil {
		return 0, fmt.Errorf("build insert summoners query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert summoners tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inserted, err := execStatements(ctx, tx, "insert summoners", stmts)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert summoners tx: %w", err)
	}
	return inserted, nil
}
