package dto

type AssigneeItem struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type TaskItem struct {
	ID            uint64         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Status        string         `json:"status"`
	Details       *string        `json:"details,omitempty"`
	Rating        *int           `json:"rating,omitempty"`
	Comments      *string        `json:"comments,omitempty"`
	DueDate       string         `json:"due_date"`
	CreatedAt     string         `json:"created_at"`
	CreatedBy     uint64         `json:"created_by"`
	CreatedByName string         `json:"created_by_name"`
	AssignedUsers []AssigneeItem `json:"assigned_users"`
}

type UserTasksItem struct {
	Username string     `json:"username"`
	Tasks    []TaskItem `json:"tasks"`
}

type UserTasksResponse struct {
	TargetDate string     `json:"target_date"`
	Tasks      []TaskItem `json:"tasks"`
}

type AdminTasksResponse struct {
	TargetDate string          `json:"target_date"`
	Users      []UserTasksItem `json:"users"`
}

type CreateTaskRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   string   `json:"description" binding:"max=65535"`
	DueDate       string   `json:"due_date" binding:"required,datetime=2006-01-02"`
	AssignedUsers []uint64 `json:"assigned_users" binding:"required,min=1,dive,gt=0"`
}

type SelfTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=65535"`
	DueDate     string `json:"due_date" binding:"required,datetime=2006-01-02"`
}

type StatusUpdateRequest struct {
	Status  string  `json:"status" binding:"required"`
	Details *string `json:"details" binding:"omitempty,max=1000"`
}

type ReviewRequest struct {
	Rating   *int   `json:"rating" binding:"required"`
	Comments string `json:"comments"`
}
