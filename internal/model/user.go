package model

import (
	"errors"
	"strings"
	"time"
)

// Role enumerates the account types known to the system.  Using a named
// type instead of raw strings gives call sites exhaustive switches and
// keeps table access free of role-keyed name interpolation.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleFaculty    Role = "FACULTY"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ErrUnknownRole is returned by ParseRole for values outside the enum.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole normalizes and validates a role string supplied by a client.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleFaculty:
		return RoleFaculty, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	}
	return "", ErrUnknownRole
}

// String returns the claim value stored in JWTs and the users table.
func (r Role) String() string { return string(r) }

// User represents an application user record as stored in the `users`
// table.  CanEditProfile is the profile edit gate: false by default,
// granted by an approved ticket and revoked again on a successful
// profile save.  Only the permission service writes it.
//
// Fields:
//
//	ID             – primary key identifier of the user.
//	Email          – unique email address.
//	PasswordHash   – bcrypt hashed password.
//	FullName       – display name shown on profiles.
//	Role           – account type (STUDENT, FACULTY, SUPERADMIN).
//	CanEditProfile – whether profile saves are currently permitted.
//	IsActive       – whether the account is active.
//	CreatedAt      – timestamp of creation.
//	UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64    // users.id
	Email          string    // users.email
	PasswordHash   string    // users.password_hash
	FullName       string    // users.full_name
	Role           Role      // users.role
	CanEditProfile bool      // users.can_edit_profile
	IsActive       bool      // users.is_active
	CreatedAt      time.Time // users.created_at
	UpdatedAt      time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA-256 hash.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
