package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"student":      RoleStudent,
		" FACULTY ":    RoleFaculty,
		"SuperAdmin":   RoleSuperAdmin,
		"\tsuperadmin": RoleSuperAdmin,
	} {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, in := range []string{"", "admin", "PROFESSOR", "students"} {
		_, err := ParseRole(in)
		assert.ErrorIs(t, err, ErrUnknownRole, in)
	}
}
