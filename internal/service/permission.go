// Package service holds components that sit between handlers and
// repositories when a behavior spans more than one table or call site.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devkashyap/college-management/internal/repository"
)

// ErrGrantNotApplied signals that a grant ran but changed no row even
// though the user was just looked up.  The resolution transaction treats
// it as an internal failure and rolls back.
var ErrGrantNotApplied = errors.New("profile edit grant not applied")

// ProfileGate owns the per-user can_edit_profile flag.  The flag is
// toggled from two unrelated flows (ticket approval grants it, a
// successful profile save revokes it), so both go through this one
// component instead of writing the column ad hoc.
type ProfileGate struct {
	db *sql.DB
}

// NewProfileGate returns a ProfileGate bound to the given database.
func NewProfileGate(db *sql.DB) *ProfileGate { return &ProfileGate{db: db} }

// GrantTx enables profile editing for a user inside an existing
// transaction.  The user is looked up first so a dangling ticket owner
// surfaces as ErrUserNotFound; a grant that then affects zero rows is
// reported as ErrGrantNotApplied.  Either error must cause the caller to
// roll back.
func (g *ProfileGate) GrantTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	var id uint64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id=? LIMIT 1", userID).Scan(&id)
	if err == sql.ErrNoRows {
		return repository.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET can_edit_profile=TRUE WHERE id=?", userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGrantNotApplied
	}
	return nil
}

// Revoke disables profile editing for a user.  Called after a successful
// profile save; the next save requires a freshly approved ticket.
func (g *ProfileGate) Revoke(ctx context.Context, userID uint64) error {
	_, err := g.db.ExecContext(ctx,
		"UPDATE users SET can_edit_profile=FALSE WHERE id=?", userID)
	return err
}
