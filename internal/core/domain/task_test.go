package domain_test

import (
	"strings"
	"testing"
	"time"

	"taskflow/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	for _, value := range []string{"pending", "in-progress", "completed", " Completed "} {
		_, err := domain.ParseTaskStatus(value)
		assert.NoError(t, err, value)
	}

	_, err := domain.ParseTaskStatus("blocked")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewInput_RatingBoundaries(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		err := domain.ReviewInput{Rating: rating}.Validate()
		assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
	}
	for _, rating := range []int{1, 3, 5} {
		assert.NoError(t, domain.ReviewInput{Rating: rating, Comments: "ok"}.Validate(), "rating %d", rating)
	}
}

func TestReviewInput_CommentsTooLong(t *testing.T) {
	err := domain.ReviewInput{Rating: 4, Comments: strings.Repeat("x", domain.MaxNoteLength+1)}.Validate()
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTaskInput_RequiresAssignees(t *testing.T) {
	err := domain.CreateTaskInput{Title: "Ship it"}.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidAssignment)

	err = domain.CreateTaskInput{Title: "  ", AssigneeIDs: []uint64{1}}.Validate()
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskFilter_Matches(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	userID := uint64(7)
	filter := domain.TaskFilter{Date: day, AssigneeID: &userID}

	base := domain.Task{
		DueDate:   day,
		CreatedAt: day.Add(15 * time.Hour),
		Assignees: []domain.Assignee{{ID: 7, Username: "u7"}},
	}
	assert.True(t, filter.Matches(base))

	dueBefore := base
	dueBefore.DueDate = day.AddDate(0, 0, -1)
	assert.False(t, filter.Matches(dueBefore))

	createdAfter := base
	createdAfter.CreatedAt = day.AddDate(0, 0, 1)
	assert.False(t, filter.Matches(createdAfter))

	otherAssignee := base
	otherAssignee.Assignees = []domain.Assignee{{ID: 8, Username: "u8"}}
	assert.False(t, filter.Matches(otherAssignee))
	assert.True(t, domain.TaskFilter{Date: day}.Matches(otherAssignee))
}

func TestGroupByAssignee_PartitionsEveryPair(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Assignees: []domain.Assignee{{ID: 2, Username: "bob"}, {ID: 1, Username: "alice"}}},
		{ID: 2, Assignees: []domain.Assignee{{ID: 1, Username: "alice"}}},
		{ID: 3, Assignees: []domain.Assignee{{ID: 3, Username: "carol"}, {ID: 2, Username: "bob"}}},
	}

	groups := domain.GroupByAssignee(tasks)

	require.Len(t, groups, 3)
	assert.Equal(t, "bob", groups[0].Username)
	assert.Equal(t, "alice", groups[1].Username)
	assert.Equal(t, "carol", groups[2].Username)

	edges := 0
	for _, task := range tasks {
		edges += len(task.Assignees)
	}
	total := 0
	for _, group := range groups {
		total += len(group.Tasks)
	}
	assert.Equal(t, edges, total)
	assert.Equal(t, []uint64{1, 3}, []uint64{groups[0].Tasks[0].ID, groups[0].Tasks[1].ID})
}

func TestRequireRole(t *testing.T) {
	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}
	user := domain.Principal{ID: 2, Role: domain.RoleUser}

	assert.NoError(t, domain.RequireRole(admin, domain.RoleAdmin))
	assert.ErrorIs(t, domain.RequireRole(user, domain.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, domain.RequireRole(admin, domain.RoleUser), domain.ErrForbidden)
}

func TestParseRole(t *testing.T) {
	role, err := domain.ParseRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	_, err = domain.ParseRole("editor")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
