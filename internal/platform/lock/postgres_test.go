package lock

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLocker(t *testing.T) (*PostgresLocker, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresLocker(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresLocker_AcquireAndRelease(t *testing.T) {
	t.Parallel()

	locker, mock := newMockLocker(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_try_advisory_lock($1::int4, $2::int4)")).
		WithArgs(int32(1001), int32(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_advisory_unlock($1::int4, $2::int4)")).
		WithArgs(int32(1001), int32(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pg_advisory_unlock"}).AddRow(true))

	lease, ok, err := locker.TryAcquire(context.Background(), Key{Namespace: 1001, ID: 42})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, lease.Release(context.Background()))
	require.NoError(t, lease.Release(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLocker_Contended(t *testing.T) {
	t.Parallel()

	locker, mock := newMockLocker(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_try_advisory_lock($1::int4, $2::int4)")).
		WithArgs(int32(1001), int32(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

	lease, ok, err := locker.TryAcquire(context.Background(), Key{Namespace: 1001, ID: 42})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, lease)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLocker_Held(t *testing.T) {
	t.Parallel()

	locker, mock := newMockLocker(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM pg_locks WHERE locktype = 'advisory' AND classid = $1::int4::oid AND objid = $2::int4::oid AND objsubid = 2 AND granted LIMIT 1",
	)).
		WithArgs(int32(1001), int32(42)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	held, err := locker.Held(context.Background(), Key{Namespace: 1001, ID: 42})
	require.NoError(t, err)
	assert.True(t, held)
	assert.NoError(t, mock.ExpectationsWereMet())
}
