package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee(t *testing.T) *Employee {
	t.Helper()
	e, err := NewEmployee("EMP-001", "Jordan Smith", "jsmith", "s3cret-pass", uuid.New(), uuid.New())
	require.NoError(t, err)
	return e
}

func TestNewEmployee(t *testing.T) {
	t.Run("creates employee with hashed password", func(t *testing.T) {
		e := createTestEmployee(t)

		assert.Equal(t, "EMP-001", e.Code)
		assert.Equal(t, "jsmith", e.Username)
		assert.NotEqual(t, "s3cret-pass", e.PasswordHash)
		assert.True(t, e.VerifyPassword("s3cret-pass"))
		assert.False(t, e.VerifyPassword("wrong"))
		assert.True(t, e.IsActive())
	})

	t.Run("normalizes code and username casing", func(t *testing.T) {
		e, err := NewEmployee("emp-002", "Casey Doe", "CaseyD", "s3cret-pass", uuid.New(), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, "EMP-002", e.Code)
		assert.Equal(t, "caseyd", e.Username)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewEmployee("EMP-003", "Casey Doe", "caseyd", "short", uuid.New(), uuid.New())

		require.Error(t, err)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewEmployee("EMP-004", "Casey Doe", "cd", "s3cret-pass", uuid.New(), uuid.New())

		require.Error(t, err)
	})
}

func TestEmployee_ChangePassword(t *testing.T) {
	t.Run("changes with correct current password", func(t *testing.T) {
		e := createTestEmployee(t)

		err := e.ChangePassword("s3cret-pass", "new-password")

		require.NoError(t, err)
		assert.True(t, e.VerifyPassword("new-password"))
		assert.False(t, e.VerifyPassword("s3cret-pass"))
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		e := createTestEmployee(t)

		err := e.ChangePassword("wrong", "new-password")

		require.Error(t, err)
		assert.True(t, e.VerifyPassword("s3cret-pass"))
	})
}

func TestEmployee_Deactivate(t *testing.T) {
	e := createTestEmployee(t)

	e.Deactivate()

	assert.False(t, e.IsActive())
}

func TestRole_HasPermission(t *testing.T) {
	t.Run("admin wildcard grants everything", func(t *testing.T) {
		role, err := NewRole(RoleNameAdmin, "Administrator", []string{"*"})
		require.NoError(t, err)

		assert.True(t, role.HasPermission("orders.return"))
		assert.True(t, role.HasPermission("anything.at.all"))
	})

	t.Run("explicit permissions only", func(t *testing.T) {
		role, err := NewRole(RoleNameCashier, "Cashier", []string{"orders.create", "orders.return"})
		require.NoError(t, err)

		assert.True(t, role.HasPermission("orders.return"))
		assert.False(t, role.HasPermission("employees.manage"))
	})
}
