package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type TaskRepository struct {
	store *Store
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

// Create stores the task and its assignment links together; a missing
// assignee leaves the store untouched.
func (r *TaskRepository) Create(_ context.Context, input domain.NewTask) (uint64, error) {
	if len(input.AssigneeIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one assignee is required", domain.ErrInvalidAssignment)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, userID := range input.AssigneeIDs {
		if _, ok := r.store.data.users[userID]; !ok {
			return 0, fmt.Errorf("%w: user %d does not exist", domain.ErrInvalidAssignment, userID)
		}
	}

	id := r.store.data.nextTaskID
	r.store.data.nextTaskID++
	r.store.data.tasks[id] = domain.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     domain.Day(input.DueDate),
		CreatedAt:   input.CreatedAt,
		CreatedBy:   input.CreatedBy,
	}
	r.store.data.assignments[id] = uniqueSorted(input.AssigneeIDs)

	return id, nil
}

func (r *TaskRepository) FindByID(_ context.Context, id uint64) (domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.data.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.enrich(task), nil
}

func (r *TaskRepository) FindAssigned(ctx context.Context, id uint64, userID uint64) (domain.Task, error) {
	task, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !task.IsAssignedTo(userID) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) CountAssignedDueOn(_ context.Context, userID uint64, dueDate time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := domain.Day(dueDate)
	count := 0
	for id, task := range r.store.data.tasks {
		if !task.DueDate.Equal(day) {
			continue
		}
		for _, assignee := range r.store.data.assignments[id] {
			if assignee == userID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *TaskRepository) ListActive(_ context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]uint64, 0, len(r.store.data.tasks))
	for id := range r.store.data.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tasks := make([]domain.Task, 0)
	for _, id := range ids {
		task := r.enrich(r.store.data.tasks[id])
		if filter.Matches(task) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, task domain.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.data.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	stored.Status = task.Status
	stored.Details = task.Details
	stored.Rating = task.Rating
	stored.Comments = task.Comments
	r.store.data.tasks[task.ID] = stored

	return nil
}

// enrich must be called with the store lock held.
func (r *TaskRepository) enrich(task domain.Task) domain.Task {
	if creator, ok := r.store.data.users[task.CreatedBy]; ok {
		task.CreatedByName = creator.Name
	}
	userIDs := r.store.data.assignments[task.ID]
	task.Assignees = make([]domain.Assignee, 0, len(userIDs))
	for _, userID := range userIDs {
		task.Assignees = append(task.Assignees, domain.Assignee{
			ID:       userID,
			Username: r.store.data.users[userID].Username,
		})
	}
	return task
}

func uniqueSorted(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
