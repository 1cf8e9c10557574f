package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/riskibarqy/lol-match-history/internal/builder"
	"github.com/riskibarqy/lol-match-history/internal/domain/timeline"
	"github.com/riskibarqy/lol-match-history/internal/platform/logging"
	"github.com/riskibarqy/lol-match-history/internal/schema"
	"github.com/riskibarqy/lol-match-history/internal/schema/schematest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimeline(t *testing.T) *timeline.AdvancedTimeline {
	t.Helper()

	payload := schematest.Timeline("NA1_123", 3)
	payload.Info.Frames[1].RawEvents = schematest.SampleEvents(60001)
	decoded, err := schema.NewDecoder(logging.NewNop()).DecodeTimeline(schematest.TimelineJSON(payload))
	require.NoError(t, err)
	return builder.BuildTimeline(decoded, 7)
}

func expectTimelineHead(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO advanced_timelines (match_id, frame_interval) VALUES ($1, $2) ON CONFLICT (match_id) DO NOTHING RETURNING id")).
		WithArgs(int64(7), int64(60000)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO timeline_frames (timeline_id, frame_index, timestamp) VALUES ($1, $2, $3), ($4, $5, $6), ($7, $8, $9) RETURNING id, frame_index")).
		WithArgs(int64(11), int64(0), int64(0), int64(11), int64(1), int64(60000), int64(11), int64(2), int64(120000)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "frame_index"}).
			AddRow(int64(21), 0).
			AddRow(int64(22), 1).
			AddRow(int64(23), 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timeline_participant_frames (frame_id, participant_index, current_gold,")).
		WillReturnResult(sqlmock.NewResult(0, 30))
}

func eventKeys(item *timeline.AdvancedTimeline) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "frame_id", "event_index"})
	for i, event := range item.Frames[1].Events {
		rows.AddRow(int64(300+i), int64(22), event.EventIndex)
	}
	return rows
}

func TestTimelineRepository_SaveWritesParentsFirst(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimelineRepository(db)
	item := sampleTimeline(t)

	mock.ExpectBegin()
	expectTimelineHead(mock)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO timeline_events (frame_id, event_index, type, timestamp, real_timestamp,")).
		WillReturnRows(eventKeys(item))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timeline_victim_damage (event_id, direction, seq,")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	id, err := repo.Save(context.Background(), item, false)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimelineRepository_SaveRollsBackOnEventFailure(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimelineRepository(db)

	mock.ExpectBegin()
	expectTimelineHead(mock)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO timeline_events")).
		WillReturnError(errors.New("value too long for type character varying"))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), sampleTimeline(t), false)
	require.ErrorContains(t, err, "insert events")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimelineRepository_SaveReportsExisting(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimelineRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO advanced_timelines")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Save(context.Background(), sampleTimeline(t), false)
	require.ErrorIs(t, err, timeline.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimelineRepository_OverwriteDeletesPreviousTree(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimelineRepository(db)
	item := sampleTimeline(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM advanced_timelines WHERE match_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectTimelineHead(mock)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO timeline_events")).
		WillReturnRows(eventKeys(item))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timeline_victim_damage")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	_, err := repo.Save(context.Background(), item, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimelineRepository_ExistsForMatch(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewTimelineRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM advanced_timelines WHERE match_id = $1 LIMIT 1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsForMatch(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
