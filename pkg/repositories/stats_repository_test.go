package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vidstat/statbot/pkg/translator"
)

// fakeRow scans a canned value or fails with a canned error.
type fakeRow struct {
	value any
	err   error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return errors.New("scalar scan expects one destination")
	}
	*(dest[0].(*any)) = r.value
	return nil
}

type fakeQuerier struct {
	row     *fakeRow
	lastSQL string
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	return q.row
}

func newStatsRepo(t *testing.T, row *fakeRow) (*StatsRepository, *fakeQuerier) {
	t.Helper()
	q := &fakeQuerier{row: row}
	return NewStatsRepository(q, time.Second, zaptest.NewLogger(t)), q
}

func TestQueryScalar_Value(t *testing.T) {
	repo, q := newStatsRepo(t, &fakeRow{value: int64(42)})

	value, found, err := repo.QueryScalar(context.Background(), translator.CertifiedQuery("SELECT COUNT(*) FROM videos"))

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(42), value)
	assert.Equal(t, "SELECT COUNT(*) FROM videos", q.lastSQL)
}

func TestQueryScalar_ZeroIsAnAnswer(t *testing.T) {
	repo, _ := newStatsRepo(t, &fakeRow{value: int64(0)})

	value, found, err := repo.QueryScalar(context.Background(), translator.CertifiedQuery("SELECT COUNT(*) FROM videos WHERE views_count > 10000000"))

	require.NoError(t, err)
	assert.True(t, found, "a zero scalar is a real answer, not absence")
	assert.Equal(t, int64(0), value)
}

func TestQueryScalar_NoRows(t *testing.T) {
	repo, _ := newStatsRepo(t, &fakeRow{err: pgx.ErrNoRows})

	value, found, err := repo.QueryScalar(context.Background(), translator.CertifiedQuery("SELECT views_count FROM videos WHERE video_id = 'missing'"))

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestQueryScalar_NullScalar(t *testing.T) {
	repo, _ := newStatsRepo(t, &fakeRow{value: nil})

	value, found, err := repo.QueryScalar(context.Background(), translator.CertifiedQuery("SELECT SUM(views_count) FROM videos WHERE 1 = 0"))

	require.NoError(t, err)
	assert.False(t, found, "a NULL scalar reads as no result")
	assert.Nil(t, value)
}

func TestQueryScalar_ExecutionError(t *testing.T) {
	boom := errors.New("relation does not exist")
	repo, _ := newStatsRepo(t, &fakeRow{err: boom})

	_, found, err := repo.QueryScalar(context.Background(), translator.CertifiedQuery("SELECT COUNT(*) FROM nowhere"))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)
}
