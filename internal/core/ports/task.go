package ports

import (
	"context"
	"time"

	"taskflow/internal/core/domain"
)

// Transactor runs fn as one unit of work. Repository calls made with the
// context passed to fn join the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TaskRepository interface {
	Create(ctx context.Context, task domain.NewTask) (uint64, error)
	FindByID(ctx context.Context, id uint64) (domain.Task, error)
	FindAssigned(ctx context.Context, id uint64, userID uint64) (domain.Task, error)
	CountAssignedDueOn(ctx context.Context, userID uint64, dueDate time.Time) (int, error)
	ListActive(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
}

type TaskService interface {
	CreateTask(ctx context.Context, actor domain.Principal, input domain.CreateTaskInput) (domain.Task, error)
	CreateSelfTask(ctx context.Context, actor domain.Principal, input domain.SelfTaskInput) (domain.Task, error)
	UpdateTaskStatus(ctx context.Context, actor domain.Principal, taskID uint64, input domain.StatusUpdateInput) (domain.Task, error)
	ReviewTask(ctx context.Context, actor domain.Principal, taskID uint64, input domain.ReviewInput) (domain.Task, error)
	TasksForUser(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.Task, error)
	TasksForAdmin(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.Task, error)
	TasksForAdminGroupedByUser(ctx context.Context, actor domain.Principal, date time.Time) ([]domain.UserTasks, error)
}
