package reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

var day = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

func TestActiveAfterQuery(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 45, 30, 0, time.UTC)

	query, args, err := psqlbuilder.Select("id").From(table).Where(activeAfter(now)).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM reservations WHERE (date > $1 OR (date = $2 AND start_time > $3))", query)
	assert.Equal(t, []interface{}{"2026-03-10", "2026-03-10", "18:45:30"}, args)
}

func TestCancelIfConfirmedQuery(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	query, args, err := cancelIfConfirmedQuery(42, domain.CancelReasonUser, at).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE reservations SET status = $1, cancellation_reason = $2, cancelled_at = $3, updated_at = NOW() "+
			"WHERE id = $4 AND status = $5",
		query)
	assert.Equal(t, []interface{}{domain.StatusCancelled, domain.CancelReasonUser, at, int64(42), domain.StatusConfirmed}, args)
}

func TestCancelIfConfirmedReportsLostRace(t *testing.T) {
	db := &storagetest.Recorder{}
	repo := NewRepository(db)

	ok, err := repo.CancelIfConfirmed(context.Background(), 42, domain.CancelReasonDisplaced, day)
	require.NoError(t, err)
	assert.False(t, ok)

	db.RowsAffected = 1
	ok, err = repo.CancelIfConfirmed(context.Background(), 42, domain.CancelReasonDisplaced, day)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, db.Queries, 2)
}

func TestCancelIfConfirmedUsesTransactionFromContext(t *testing.T) {
	db := &storagetest.Recorder{}
	tx := &storagetest.Recorder{RowsAffected: 1}
	repo := NewRepository(db)

	ok, err := repo.CancelIfConfirmed(dbmetrics.WithTx(context.Background(), tx), 7, domain.CancelReasonUser, day)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, db.Queries)
	assert.Len(t, tx.Queries, 1)
}

func TestReadsLockRowsOnlyInsideTransaction(t *testing.T) {
	db := &storagetest.Recorder{}
	tx := &storagetest.Recorder{}
	repo := NewRepository(db)

	_, err := repo.GetByCourtAndDate(context.Background(), 1, day)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.False(t, strings.Contains(db.Last().SQL, "FOR UPDATE"))
	assert.Equal(t, []interface{}{int64(1), "2026-03-12", domain.StatusConfirmed}, db.Last().Args)

	txCtx := dbmetrics.WithTx(context.Background(), tx)
	_, err = repo.GetByCourtAndDate(txCtx, 1, day)
	assert.ErrorIs(t, err, storagetest.ErrNoRows)
	assert.True(t, strings.HasSuffix(tx.Last().SQL, "ORDER BY start_time ASC FOR UPDATE"), tx.Last().SQL)

	_, err = repo.GetActiveByApartment(txCtx, "A-101", day)
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(tx.Last().SQL, "FOR UPDATE"), tx.Last().SQL)
	assert.Empty(t, db.Queries[1:])
}

func TestGetActiveByApartmentsSkipsEmptyInput(t *testing.T) {
	db := &storagetest.Recorder{}

	got, err := NewRepository(db).GetActiveByApartments(context.Background(), nil, day)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, db.Queries)
}
