package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

type TaskService struct {
	transactor     ports.Transactor
	taskRepository ports.TaskRepository
	userRepository ports.UserRepository
	now            func() time.Time
}

func NewTaskService(
	transactor ports.Transactor,
	taskRepository ports.TaskRepository,
	userRepository ports.UserRepository,
) *TaskService {
	return &TaskService{
		transactor:     transactor,
		taskRepository: taskRepository,
		userRepository: userRepository,
		now:            time.Now,
	}
}

// WithClock replaces the clock used to stamp created_at.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, actor domain.Principal, input domain.CreateTaskInput) (domain.Task, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return domain.Task{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	var task domain.Task
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		assignees, err := s.userRepository.FindByIDs(ctx, uniqueIDs(input.AssigneeIDs))
		if err != nil {
			return fmt.Errorf("resolve assignees: %w", err)
		}
		if len(assignees) == 0 {
			return fmt.Errorf("%w: none of the given users exist", domain.ErrInvalidAssignment)
		}

		assigneeIDs := make([]uint64, 0, len(assignees))
		for _, assignee := range assignees {
			assigneeIDs = append(assigneeIDs, assignee.ID)
		}

		task, err = s.insert(ctx, domain.NewTask{
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			DueDate:     domain.Day(input.DueDate),
			CreatedBy:   actor.ID,
			AssigneeIDs: assigneeIDs,
		})
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (s *TaskService) CreateSelfTask(ctx context.Context, actor domain.Principal, input domain.SelfTaskInput) (domain.Task, error) {
	if err := domain.RequireRole(actor, domain.RoleUser); err != nil {
		return domain.Task{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	dueDate := domain.Day(input.DueDate)

	var task domain.Task
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		scheduled, err := s.taskRepository.CountAssignedDueOn(ctx, actor.ID, dueDate)
		if err != nil {
			return fmt.Errorf("count scheduled tasks: %w", err)
		}
		if scheduled > 0 {
			return domain.ErrConflictingAssignment
		}

		task, err = s.insert(ctx, domain.NewTask{
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			DueDate:     dueDate,
			CreatedBy:   actor.ID,
			AssigneeIDs: []uint64{actor.ID},
		})
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, actor domain.Principal, taskID uint64, input domain.StatusUpdateInput) (domain.Task, error) {
	if err := domain.RequireRole(actor, domain.RoleUser); err != nil {
		return domain.Task{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}
	status, err := domain.ParseTaskStatus(string(input.Status))
	if err != nil {
		return domain.Task{}, err
	}

	var task domain.Task
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepository.FindAssigned(ctx, taskID, actor.ID)
		if err != nil {
			// Missing and not-assigned must look the same to the caller.
			if errors.Is(err, domain.ErrTaskNotFound) {
				return domain.ErrTaskNotFoundOrUnauthorized
			}
			return err
		}

		task.Status = status
		task.Details = input.Details
		return s.taskRepository.Update(ctx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (s *TaskService) ReviewTask(ctx context.Context, actor domain.Principal, taskID uint64, input domain.ReviewInput) (domain.Task, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return domain.Task{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Task{}, err
	}

	var task domain.Task
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepository.FindByID(ctx, taskID)
		if err != nil {
			return err
		}

		rating := input.Rating
		comments := input.Comments
		task.Rating = &rating
		task.Comments = &comments
		return s.taskRepository.Update(ctx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (s *TaskService) TasksForUser(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.Task, error) {
	userID := actor.ID
	return s.taskRepository.ListActive(ctx, domain.TaskFilter{Date: domain.Day(date), AssigneeID: &userID})
}

func (s *TaskService) TasksForAdmin(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.Task, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.taskRepository.ListActive(ctx, domain.TaskFilter{Date: domain.Day(date)})
}

func (s *TaskService) TasksForAdminGroupedByUser(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.UserTasks, error) {
	tasks, err := s.TasksForAdmin(ctx, actor, date)
	if err != nil {
		return nil, err
	}
	return domain.GroupByAssignee(tasks), nil
}

func (s *TaskService) insert(ctx context.Context, task domain.NewTask) (domain.Task, error) {
	task.Status = domain.TaskStatusPending
	task.CreatedAt = s.now().UTC()

	id, err := s.taskRepository.Create(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.FindByID(ctx, id)
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

var _ ports.TaskService = (*TaskService)(nil)
