package mapper

import (
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        string(task.Status),
		DueDate:       task.DueDate.Format(domain.DateLayout),
		CreatedAt:     task.CreatedAt.Format(time.RFC3339),
		CreatedBy:     task.CreatedBy,
		CreatedByName: task.CreatedByName,
		AssignedUsers: make([]dto.AssigneeItem, 0, len(task.Assignees)),
	}

	if task.Details != nil {
		value := *task.Details
		item.Details = &value
	}

	if task.Rating != nil {
		value := *task.Rating
		item.Rating = &value
	}

	if task.Comments != nil {
		value := *task.Comments
		item.Comments = &value
	}

	for _, assignee := range task.Assignees {
		item.AssignedUsers = append(item.AssignedUsers, dto.AssigneeItem{
			ID:       assignee.ID,
			Username: assignee.Username,
		})
	}

	return item
}

func ToUserTasksResponse(date time.Time, tasks []domain.Task) dto.UserTasksResponse {
	return dto.UserTasksResponse{
		TargetDate: date.Format(domain.DateLayout),
		Tasks:      ToTaskItems(tasks),
	}
}

func ToAdminTasksResponse(date time.Time, groups []domain.UserTasks) dto.AdminTasksResponse {
	users := make([]dto.UserTasksItem, 0, len(groups))
	for _, group := range groups {
		users = append(users, dto.UserTasksItem{
			Username: group.Username,
			Tasks:    ToTaskItems(group.Tasks),
		})
	}

	return dto.AdminTasksResponse{
		TargetDate: date.Format(domain.DateLayout),
		Users:      users,
	}
}
