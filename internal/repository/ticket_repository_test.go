package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*TicketRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewTicketRepo(db), mock, func() { db.Close() }
}

func TestTicketGetByID_NotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE id=? LIMIT 1")).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketResolveTx_UpdatesPendingRow(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET status=?, response=?, updated_at=? WHERE id=? AND status=?")).
		WithArgs("APPROVED", "ok", now, uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, repo.ResolveTx(context.Background(), tx, 7, "APPROVED", "ok", now))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketResolveTx_ZeroRowsConflicts(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET status=?, response=?, updated_at=? WHERE id=? AND status=?")).
		WithArgs("DECLINED", "too late", now, uint64(7), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.ResolveTx(context.Background(), tx, 7, "DECLINED", "too late", now), ErrConflict)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketListPending_OldestFirst(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "description", "status", "response", "created_at", "updated_at"}).
		AddRow(1, 10, "first", "PENDING", "", now.Add(-2*time.Hour), now).
		AddRow(2, 11, "second", "PENDING", "", now.Add(-1*time.Hour), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE status=? ORDER BY created_at ASC")).
		WithArgs("PENDING").
		WillReturnRows(rows)

	tickets, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, uint64(1), tickets[0].ID)
	assert.Equal(t, uint64(2), tickets[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketListByUser_EmptySlice(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "user_id", "description", "status", "response", "created_at", "updated_at"})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE user_id=? ORDER BY created_at DESC")).
		WithArgs(uint64(42)).
		WillReturnRows(rows)

	tickets, err := repo.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
