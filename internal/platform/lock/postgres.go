package lock

import (
	"context"
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/lol-match-history/internal/platform/querybuilder"
)

// PostgresLocker uses session-level advisory locks. Each lease pins one
// pooled connection until it is released.
type PostgresLocker struct {
	db *sqlx.DB
}

func NewPostgresLocker(db *sqlx.DB) *PostgresLocker {
	return &PostgresLocker{db: db}
}

func (l *PostgresLocker) TryAcquire(ctx context.Context, key Key) (Lease, bool, error) {
	conn, err := l.db.Connx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock connection: %w", err)
	}

	objID := foldID(key.ID)
	var acquired bool
	if err := conn.QueryRowxContext(ctx, "SELECT pg_try_advisory_lock($1::int4, $2::int4)", key.Namespace, objID).Scan(&acquired); err != nil {
		_ = conn.Close()
		return nil, false, fmt.Errorf("try advisory lock key=%s: %w", key, err)
	}
	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}
	return &postgresLease{conn: conn, key: key, objID: objID}, true, nil
}

func (l *PostgresLocker) Held(ctx context.Context, key Key) (bool, error) {
	query, args, err := qb.Select("1").From("pg_locks").
		Where(
			qb.EqLiteral("locktype", "advisory"),
			qb.Expr("classid = ?::int4::oid", key.Namespace),
			qb.Expr("objid = ?::int4::oid", foldID(key.ID)),
			qb.Expr("objsubid = 2"),
			qb.Expr("granted"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build advisory lock probe query: %w", err)
	}

	var rows []int
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return false, fmt.Errorf("probe advisory lock key=%s: %w", key, err)
	}
	return len(rows) > 0, nil
}

type postgresLease struct {
	conn  *sqlx.Conn
	key   Key
	objID int32

	once sync.Once
	err  error
}

func (p *postgresLease) Release(ctx context.Context) error {
	p.once.Do(func() {
		var released bool
		err := p.conn.QueryRowxContext(ctx, "SELECT pg_advisory_unlock($1::int4, $2::int4)", p.key.Namespace, p.objID).Scan(&released)
		if err != nil || !released {
			// The session may still hold the lock; drop the connection
			// instead of returning it to the pool.
			_ = p.conn.Raw(func(any) error { return driver.ErrBadConn })
		}
		closeErr := p.conn.Close()
		switch {
		case err != nil:
			p.err = fmt.Errorf("advisory unlock key=%s: %w", p.key, err)
		case !released:
			p.err = fmt.Errorf("advisory unlock key=%s: lock was not held", p.key)
		case closeErr != nil:
			p.err = fmt.Errorf("release lock connection: %w", closeErr)
		}
	})
	return p.err
}
