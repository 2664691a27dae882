package service

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devkashyap/college-management/internal/repository"
)

var (
	lookupUser = regexp.QuoteMeta("SELECT id FROM users WHERE id=? LIMIT 1")
	grantFlag  = regexp.QuoteMeta("UPDATE users SET can_edit_profile=TRUE WHERE id=?")
	revokeFlag = regexp.QuoteMeta("UPDATE users SET can_edit_profile=FALSE WHERE id=?")
)

func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) error {
	t.Helper()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	err = fn(tx)
	require.NoError(t, tx.Rollback())
	return err
}

func TestGrantTx_Grants(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	gate := NewProfileGate(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupUser).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(grantFlag).WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err = inTx(t, db, func(tx *sql.Tx) error {
		return gate.GrantTx(context.Background(), tx, 42)
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantTx_AlreadyGrantedStillApplies(t *testing.T) {
	// The user holds an unused grant and a second ticket is approved.
	// With clientFoundRows in the DSN the driver reports one matched row
	// even though nothing changed, so the grant must succeed rather than
	// surface as ErrGrantNotApplied.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	gate := NewProfileGate(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupUser).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(grantFlag).WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1)) // matched, not changed
	mock.ExpectRollback()

	err = inTx(t, db, func(tx *sql.Tx) error {
		return gate.GrantTx(context.Background(), tx, 42)
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantTx_UserMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	gate := NewProfileGate(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupUser).WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err = inTx(t, db, func(tx *sql.Tx) error {
		return gate.GrantTx(context.Background(), tx, 42)
	})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantTx_ZeroRowsIsInternalFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	gate := NewProfileGate(db)

	mock.ExpectBegin()
	mock.ExpectQuery(lookupUser).WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(grantFlag).WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = inTx(t, db, func(tx *sql.Tx) error {
		return gate.GrantTx(context.Background(), tx, 42)
	})
	assert.ErrorIs(t, err, ErrGrantNotApplied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevoke_ClosesGate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	gate := NewProfileGate(db)

	mock.ExpectExec(revokeFlag).WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, gate.Revoke(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
