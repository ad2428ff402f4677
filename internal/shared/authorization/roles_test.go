package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
	assert.True(t, role.IsAdmin())

	role, err = ParseUserRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
	assert.False(t, role.IsAdmin())

	// The role set is closed: nothing gets coerced.
	for _, s := range []string{"", "Admin", "superuser", "root"} {
		_, err := ParseUserRole(s)
		assert.Error(t, err, "role %q must be rejected", s)
	}
}

func TestHomeRoute(t *testing.T) {
	assert.Equal(t, "/admin", RoleAdmin.HomeRoute())
	assert.Equal(t, "/app", RoleUser.HomeRoute())
}
