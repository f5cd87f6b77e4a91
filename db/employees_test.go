package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"radiotrack/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewRepo(gdb)
}

func newTestEmployee(username, role string, approved bool) *models.Employee {
	return &models.Employee{
		ID:                uuid.NewString(),
		Username:          username,
		FirstName:         "Test",
		LastName:          "Employee",
		PasswordHash:      "$2a$12$fakefakefakefakefakefake",
		Role:              role,
		IsApproved:        approved,
		PasswordChangedAt: time.Now(),
	}
}

func TestEmployeeCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("  JSmith  ", models.RoleEmployee, true)
	err := repo.CreateEmployee(ctx, emp)
	require.NoError(t, err)

	// Usernames are stored trimmed and lowercased.
	assert.Equal(t, "jsmith", emp.Username)

	found, err := repo.FindEmployeeByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "jsmith", found.Username)
	assert.Equal(t, models.RoleEmployee, found.Role)

	// Lookup is case-insensitive.
	found, err = repo.FindEmployeeByUsername(ctx, "JSMITH")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, found.ID)

	_, err = repo.FindEmployeeByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEmployeeUsernameUnique(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee("alice", models.RoleEmployee, true)))

	// A case-varied duplicate must be rejected.
	err := repo.CreateEmployee(ctx, newTestEmployee("Alice", models.RoleEmployee, true))
	assert.Error(t, err)
}

func TestTouchEmployee(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("watcher", models.RoleEmployee, true)
	require.NoError(t, repo.CreateEmployee(ctx, emp))

	found, _ := repo.FindEmployeeByID(ctx, emp.ID)
	assert.Nil(t, found.LastLoginAt)
	assert.Nil(t, found.LastSeenAt)

	require.NoError(t, repo.TouchEmployeeLogin(ctx, emp.ID))
	found, _ = repo.FindEmployeeByID(ctx, emp.ID)
	require.NotNil(t, found.LastLoginAt)
	require.NotNil(t, found.LastSeenAt)

	before := *found.LastSeenAt
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.TouchEmployeeSeen(ctx, emp.ID))
	found, _ = repo.FindEmployeeByID(ctx, emp.ID)
	assert.True(t, found.LastSeenAt.After(before))
}

func TestListEmployees(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, u := range []string{"adams", "baker", "clark"} {
		e := newTestEmployee(u, models.RoleEmployee, true)
		e.LastName = u
		require.NoError(t, repo.CreateEmployee(ctx, e))
	}

	t.Run("All", func(t *testing.T) {
		res, err := repo.ListEmployees(ctx, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.Total)
		assert.Len(t, res.Employees, 3)
	})

	t.Run("Search", func(t *testing.T) {
		res, err := repo.ListEmployees(ctx, "BAK", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Total)
		require.Len(t, res.Employees, 1)
		assert.Equal(t, "baker", res.Employees[0].Username)
	})

	t.Run("Paging", func(t *testing.T) {
		res, err := repo.ListEmployees(ctx, "", 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.Total)
		assert.Len(t, res.Employees, 1)
	})
}

func TestUpdatePasswordHistory(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("rotator", models.RoleEmployee, true)
	emp.PasswordChangeRequired = true
	require.NoError(t, repo.CreateEmployee(ctx, emp))

	for i := 0; i < models.PasswordHistoryLimit+3; i++ {
		hash := "hash-" + string(rune('a'+i))
		require.NoError(t, repo.UpdatePassword(ctx, emp.ID, hash))
	}

	// The history is capped at the retention limit, newest first.
	hashes, err := repo.HistoryHashes(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, hashes, models.PasswordHistoryLimit)
	assert.Equal(t, "hash-"+string(rune('a'+models.PasswordHistoryLimit+2)), hashes[0])

	found, _ := repo.FindEmployeeByID(ctx, emp.ID)
	assert.False(t, found.PasswordChangeRequired)
	assert.Equal(t, "hash-"+string(rune('a'+models.PasswordHistoryLimit+2)), found.PasswordHash)
	assert.False(t, found.PasswordChangedAt.IsZero())
}

func TestSetPasswordChangeRequired(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("temp", models.RoleEmployee, true)
	require.NoError(t, repo.CreateEmployee(ctx, emp))

	require.NoError(t, repo.SetPasswordChangeRequired(ctx, emp.ID, true))
	found, _ := repo.FindEmployeeByID(ctx, emp.ID)
	assert.True(t, found.PasswordChangeRequired)

	require.NoError(t, repo.SetPasswordChangeRequired(ctx, emp.ID, false))
	found, _ = repo.FindEmployeeByID(ctx, emp.ID)
	assert.False(t, found.PasswordChangeRequired)
}

func TestApproveEmployee(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("pending", models.RoleEmployee, false)
	require.NoError(t, repo.CreateEmployee(ctx, emp))

	pending, err := repo.PendingEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending", pending[0].Username)

	require.NoError(t, repo.ApproveEmployee(ctx, emp.ID))
	found, _ := repo.FindEmployeeByID(ctx, emp.ID)
	assert.True(t, found.IsApproved)

	// A second approval is a no-op and reports it.
	err = repo.ApproveEmployee(ctx, emp.ID)
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	err = repo.ApproveEmployee(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	pending, _ = repo.PendingEmployees(ctx)
	assert.Empty(t, pending)
}

func TestSetEmployeeRole(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("riser", models.RoleEmployee, true)
	require.NoError(t, repo.CreateEmployee(ctx, emp))

	require.NoError(t, repo.SetEmployeeRole(ctx, emp.ID, models.RoleManager))
	found, _ := repo.FindEmployeeByID(ctx, emp.ID)
	assert.Equal(t, models.RoleManager, found.Role)
	assert.Equal(t, models.RankManager, found.Rank())
}

func TestCountAdmins(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee("root", models.RoleAdmin, true)))
	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee("chief", models.RoleSupervisor, true)))
	// Unapproved admins and plain employees do not count.
	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee("ghost", models.RoleAdmin, false)))
	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee("worker", models.RoleEmployee, true)))

	n, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDeleteEmployee(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	emp := newTestEmployee("leaver", models.RoleEmployee, true)
	require.NoError(t, repo.CreateEmployee(ctx, emp))

	n, err := repo.DeleteEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindEmployeeByID(ctx, emp.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err = repo.DeleteEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountStalePasswords(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	fresh := newTestEmployee("fresh", models.RoleEmployee, true)
	fresh.PasswordChangedAt = time.Now()
	require.NoError(t, repo.CreateEmployee(ctx, fresh))

	stale := newTestEmployee("stale", models.RoleEmployee, true)
	stale.PasswordChangedAt = time.Now().AddDate(0, 0, -90)
	require.NoError(t, repo.CreateEmployee(ctx, stale))

	// Unapproved accounts are ignored.
	ignored := newTestEmployee("ignored", models.RoleEmployee, false)
	ignored.PasswordChangedAt = time.Now().AddDate(0, 0, -90)
	require.NoError(t, repo.CreateEmployee(ctx, ignored))

	cutoff := time.Now().AddDate(0, 0, -60)
	n, err := repo.CountStalePasswords(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	total, err := repo.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
