package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
)

const selectTaskQuery = `
SELECT
  t.id,
  t.title,
  t.description,
  t.status,
  t.details,
  t.rating,
  t.comments,
  t.due_date,
  t.created_at,
  t.created_by,
  u.name AS created_by_name
FROM tasks t
LEFT JOIN users u ON u.id = t.created_by`

const (
	insertTaskQuery = `
INSERT INTO tasks (title, description, status, due_date, created_at, created_by)
VALUES (?, ?, ?, ?, ?, ?)`

	insertAssignmentQuery = `INSERT INTO task_assignments (task_id, user_id) VALUES (?, ?)`

	findTaskByIDQuery = selectTaskQuery + `
WHERE t.id = ?`

	findAssignedTaskQuery = selectTaskQuery + `
JOIN task_assignments a ON a.task_id = t.id AND a.user_id = ?
WHERE t.id = ?`

	countAssignedDueOnQuery = `
SELECT COUNT(*)
FROM tasks t
JOIN task_assignments a ON a.task_id = t.id
WHERE a.user_id = ? AND t.due_date = ?`

	listActiveTasksQuery = selectTaskQuery + `
WHERE t.due_date >= ? AND t.created_at < ?`

	assigneeFilterClause = `
  AND EXISTS (SELECT 1 FROM task_assignments a WHERE a.task_id = t.id AND a.user_id = ?)`

	listAssigneesQuery = `
SELECT a.task_id, u.id AS user_id, u.username
FROM task_assignments a
JOIN users u ON u.id = a.user_id
WHERE a.task_id IN (?)
ORDER BY a.task_id, u.id`

	updateTaskQuery = `
UPDATE tasks SET status = ?, details = ?, rating = ?, comments = ?
WHERE id = ?`
)

type TaskRepository struct {
	db         *sqlx.DB
	transactor *Transactor
}

type taskRow struct {
	ID            uint64         `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Status        string         `db:"status"`
	Details       sql.NullString `db:"details"`
	Rating        sql.NullInt64  `db:"rating"`
	Comments      sql.NullString `db:"comments"`
	DueDate       time.Time      `db:"due_date"`
	CreatedAt     time.Time      `db:"created_at"`
	CreatedBy     uint64         `db:"created_by"`
	CreatedByName sql.NullString `db:"created_by_name"`
}

type assigneeRow struct {
	TaskID   uint64 `db:"task_id"`
	UserID   uint64 `db:"user_id"`
	Username string `db:"username"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, transactor: NewTransactor(db)}
}

// Create writes the task row and its assignment links in one transaction,
// joining the caller's transaction when there is one.
func (r *TaskRepository) Create(ctx context.Context, task domain.NewTask) (uint64, error) {
	if len(task.AssigneeIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one assignee is required", domain.ErrInvalidAssignment)
	}

	var id uint64
	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		ext := executor(ctx, r.db)

		result, err := ext.ExecContext(ctx, insertTaskQuery,
			task.Title,
			task.Description,
			string(task.Status),
			domain.Day(task.DueDate),
			task.CreatedAt,
			task.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}

		lastID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("read task id: %w", err)
		}
		id = uint64(lastID)

		for _, userID := range task.AssigneeIDs {
			if _, err := ext.ExecContext(ctx, insertAssignmentQuery, id, userID); err != nil {
				if isMySQLError(err, mysqlErrForeignKeyChild) {
					return fmt.Errorf("%w: user %d does not exist", domain.ErrInvalidAssignment, userID)
				}
				return fmt.Errorf("insert assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint64) (domain.Task, error) {
	return r.findOne(ctx, findTaskByIDQuery, id)
}

func (r *TaskRepository) FindAssigned(ctx context.Context, id uint64, userID uint64) (domain.Task, error) {
	return r.findOne(ctx, findAssignedTaskQuery, userID, id)
}

func (r *TaskRepository) CountAssignedDueOn(ctx context.Context, userID uint64, dueDate time.Time) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &count, countAssignedDueOnQuery, userID, domain.Day(dueDate)); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TaskRepository) ListActive(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	day := domain.Day(filter.Date)
	query := listActiveTasksQuery
	args := []any{day, day.AddDate(0, 0, 1)}
	if filter.AssigneeID != nil {
		query += assigneeFilterClause
		args = append(args, *filter.AssigneeID)
	}
	query += "\nORDER BY t.id"

	ext := executor(ctx, r.db)
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, ext, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	if err := r.attachAssignees(ctx, ext, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, updateTaskQuery,
		string(task.Status),
		nullableString(task.Details),
		nullableInt(task.Rating),
		nullableString(task.Comments),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", task.ID, err)
	}
	return nil
}

func (r *TaskRepository) findOne(ctx context.Context, query string, args ...any) (domain.Task, error) {
	ext := executor(ctx, r.db)

	var row taskRow
	if err := sqlx.GetContext(ctx, ext, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	tasks := []domain.Task{mapTaskRowToDomainTask(row)}
	if err := r.attachAssignees(ctx, ext, tasks); err != nil {
		return domain.Task{}, err
	}
	return tasks[0], nil
}

func (r *TaskRepository) attachAssignees(ctx context.Context, ext sqlx.ExtContext, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(tasks))
	positions := make(map[uint64]int, len(tasks))
	for i, task := range tasks {
		ids = append(ids, task.ID)
		positions[task.ID] = i
		tasks[i].Assignees = make([]domain.Assignee, 0)
	}

	query, args, err := sqlx.In(listAssigneesQuery, ids)
	if err != nil {
		return err
	}

	var rows []assigneeRow
	if err := sqlx.SelectContext(ctx, ext, &rows, ext.Rebind(query), args...); err != nil {
		return err
	}

	for _, row := range rows {
		pos, ok := positions[row.TaskID]
		if !ok {
			continue
		}
		tasks[pos].Assignees = append(tasks[pos].Assignees, domain.Assignee{ID: row.UserID, Username: row.Username})
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		DueDate:     domain.Day(row.DueDate),
		CreatedAt:   row.CreatedAt,
		CreatedBy:   row.CreatedBy,
	}

	if row.Details.Valid {
		value := row.Details.String
		task.Details = &value
	}

	if row.Rating.Valid {
		value := int(row.Rating.Int64)
		task.Rating = &value
	}

	if row.Comments.Valid {
		value := row.Comments.String
		task.Comments = &value
	}

	if row.CreatedByName.Valid {
		task.CreatedByName = row.CreatedByName.String
	}

	return task
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
