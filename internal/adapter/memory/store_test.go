package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow/internal/adapter/memory"
	"taskflow/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestStore_WithinTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := store.Users()

	admin, err := users.Create(ctx, domain.NewPrincipal{Username: "admin@test.com", Email: "admin@test.com", Name: "Master", Role: domain.RoleAdmin})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Tasks().Create(ctx, domain.NewTask{
			Title:       "rolled back",
			Status:      domain.TaskStatusPending,
			DueDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy:   admin.ID,
			AssigneeIDs: []uint64{admin.ID},
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	tasks, err := store.Tasks().ListActive(ctx, domain.TaskFilter{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskRepository_Create_RejectsUnknownAssigneeAtomically(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	admin, err := store.Users().Create(ctx, domain.NewPrincipal{Username: "admin@test.com", Email: "admin@test.com", Name: "Master", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = store.Tasks().Create(ctx, domain.NewTask{
		Title:       "partial",
		CreatedBy:   admin.ID,
		AssigneeIDs: []uint64{admin.ID, 99},
	})
	require.ErrorIs(t, err, domain.ErrInvalidAssignment)

	_, err = store.Tasks().FindByID(ctx, 1)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = store.Tasks().Create(ctx, domain.NewTask{Title: "nobody", CreatedBy: admin.ID})
	require.ErrorIs(t, err, domain.ErrInvalidAssignment)
}

func TestUserRepository_Create_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()

	_, err := users.Create(ctx, domain.NewPrincipal{Username: "a@test.com", Email: "a@test.com", Name: "A", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = users.Create(ctx, domain.NewPrincipal{Username: "A@test.com", Email: "A@test.com", Name: "A2", Role: domain.RoleUser})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}
