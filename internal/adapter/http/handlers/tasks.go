package handlers

import (
	"net/http"
	"strconv"
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/mapper"
	"taskflow/internal/adapter/http/validation"
	"taskflow/internal/core/ports"
	"taskflow/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: time.Now}
}

// WithClock replaces the clock used to default target_date.
func (h *TaskHandler) WithClock(now func() time.Time) *TaskHandler {
	h.now = now
	return h
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if _, err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTaskPayload, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateSelfTask(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.SelfTaskRequest
	if _, err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildSelfTaskInput(req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateSelfTask(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTaskPayload, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildStatusUpdateInput(req, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), actor, taskID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTaskPayload, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ReviewTask(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildReviewInput(req, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.ReviewTask(c.Request.Context(), actor, taskID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTaskPayload, apierrors.MsgFailReviewTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	date, ok := h.targetDate(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.TasksForUser(c.Request.Context(), actor, date)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTargetDate, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserTasksResponse(date, tasks))
}

func (h *TaskHandler) ListAdminTasks(c *gin.Context) {
	actor, ok := currentPrincipal(c)
	if !ok {
		return
	}

	date, ok := h.targetDate(c)
	if !ok {
		return
	}

	groups, err := h.taskService.TasksForAdminGroupedByUser(c.Request.Context(), actor, date)
	if err != nil {
		respondError(c, err, apierrors.MsgInvalidTargetDate, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToAdminTasksResponse(date, groups))
}

func (h *TaskHandler) targetDate(c *gin.Context) (time.Time, bool) {
	date, err := validation.ParseTargetDate(c.Query("target_date"), h.now())
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTargetDate)
		return time.Time{}, false
	}
	return date, true
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return 0, false
	}
	return taskID, true
}
