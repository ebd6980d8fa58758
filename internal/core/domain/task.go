package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

const (
	MaxTitleLength = 255
	MaxNoteLength  = 1000
	MinRating      = 1
	MaxRating      = 5
	DateLayout     = "2006-01-02"
)

// ParseTaskStatus accepts any of the three statuses; transition order is not enforced.
func ParseTaskStatus(value string) (TaskStatus, error) {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(value))) {
	case TaskStatusPending:
		return TaskStatusPending, nil
	case TaskStatusInProgress:
		return TaskStatusInProgress, nil
	case TaskStatusCompleted:
		return TaskStatusCompleted, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, value)
	}
}

type Assignee struct {
	ID       uint64
	Username string
}

type Task struct {
	ID            uint64
	Title         string
	Description   string
	Status        TaskStatus
	Details       *string
	Rating        *int
	Comments      *string
	DueDate       time.Time
	CreatedAt     time.Time
	CreatedBy     uint64
	CreatedByName string
	Assignees     []Assignee
}

func (t Task) IsAssignedTo(userID uint64) bool {
	for _, assignee := range t.Assignees {
		if assignee.ID == userID {
			return true
		}
	}
	return false
}

// NewTask is what the store persists: the task row plus its assignment links.
type NewTask struct {
	Title       string
	Description string
	Status      TaskStatus
	DueDate     time.Time
	CreatedAt   time.Time
	CreatedBy   uint64
	AssigneeIDs []uint64
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	AssigneeIDs []uint64
}

func (in CreateTaskInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if len(in.AssigneeIDs) == 0 {
		return fmt.Errorf("%w: at least one assignee is required", ErrInvalidAssignment)
	}
	return nil
}

type SelfTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

func (in SelfTaskInput) Validate() error {
	return validateTitle(in.Title)
}

type StatusUpdateInput struct {
	Status  TaskStatus
	Details *string
}

func (in StatusUpdateInput) Validate() error {
	if _, err := ParseTaskStatus(string(in.Status)); err != nil {
		return err
	}
	if in.Details != nil && utf8.RuneCountInString(*in.Details) > MaxNoteLength {
		return fmt.Errorf("%w: details exceed %d characters", ErrValidation, MaxNoteLength)
	}
	return nil
}

type ReviewInput struct {
	Rating   int
	Comments string
}

func (in ReviewInput) Validate() error {
	if in.Rating < MinRating || in.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, MinRating, MaxRating)
	}
	if utf8.RuneCountInString(in.Comments) > MaxNoteLength {
		return fmt.Errorf("%w: comments exceed %d characters", ErrValidation, MaxNoteLength)
	}
	return nil
}

// TaskFilter selects tasks active on Date: due on or after it and created on or before it.
type TaskFilter struct {
	Date       time.Time
	AssigneeID *uint64
}

// Matches compares by calendar day, so a task created later on Date still counts.
func (f TaskFilter) Matches(task Task) bool {
	day := Day(f.Date)
	if Day(task.DueDate).Before(day) {
		return false
	}
	if !task.CreatedAt.Before(day.AddDate(0, 0, 1)) {
		return false
	}
	if f.AssigneeID != nil && !task.IsAssignedTo(*f.AssigneeID) {
		return false
	}
	return true
}

type UserTasks struct {
	Username string
	Tasks    []Task
}

// GroupByAssignee puts every (task, assignee) pair into the bucket of that
// assignee's username. Buckets keep first-seen order.
func GroupByAssignee(tasks []Task) []UserTasks {
	groups := make([]UserTasks, 0)
	index := make(map[string]int)
	for _, task := range tasks {
		for _, assignee := range task.Assignees {
			pos, ok := index[assignee.Username]
			if !ok {
				pos = len(groups)
				index[assignee.Username] = pos
				groups = append(groups, UserTasks{Username: assignee.Username})
			}
			groups[pos].Tasks = append(groups[pos].Tasks, task)
		}
	}
	return groups
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, MaxTitleLength)
	}
	return nil
}
