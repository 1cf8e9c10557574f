package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/lol-match-history/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// execStatements runs chunked statements in order and sums affected rows.
func execStatements(ctx context.Context, tx *sqlx.Tx, label string, stmts []qb.Statement) (int, error) {
	total := 0
	for i, stmt := range stmts {
		res, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return total, fmt.Errorf("%s chunk %d: %w", label, i, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("%s chunk %d rows affected: %w", label, i, err)
		}
		total += int(affected)
	}
	return total, nil
}

// selectStatements runs chunked RETURNING statements and concatenates rows.
func selectStatements[T any](ctx context.Context, tx *sqlx.Tx, label string, stmts []qb.Statement) ([]T, error) {
	var out []T
	for i, stmt := range stmts {
		var rows []T
		if err := tx.SelectContext(ctx, &rows, stmt.SQL, stmt.Args...); err != nil {
			return nil, fmt.Errorf("%s chunk %d: %w", label, i, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}
