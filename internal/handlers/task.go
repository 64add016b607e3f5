package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/dto"
	apierrors "github.com/jaydipchangani/project-management-backend/internal/errors"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"github.com/jaydipchangani/project-management-backend/internal/services"
	"github.com/jaydipchangani/project-management-backend/internal/utils"
)

// TaskHandler serves the task endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks visible to the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	page, err := h.taskService.List(c.Request.Context(), principal, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(dto.Map(page.Items, dto.ToTaskDTO), page.Page, page.Total))
}

// ListAssignedTasks returns the visible tasks assigned to a user
func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	userID, err := utils.ParseIDParam(c, "userId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	page, err := h.taskService.ListAssignedTo(c.Request.Context(), principal, userID, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(dto.Map(page.Items, dto.ToTaskDTO), page.Page, page.Total))
}

// GetTask returns a task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToTaskDTO(*task)))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		ProjectID   uint64  `json:"project_id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		AssignedTo  uint64  `json:"assigned_to"`
		Status      string  `json:"status"`
		Priority    string  `json:"priority"`
		DueDate     *string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), principal, services.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Created("Task created successfully", dto.ToTaskDTO(*task)))
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		AssignedTo   *uint64 `json:"assigned_to"`
		Status       *string `json:"status"`
		Priority     *string `json:"priority"`
		DueDate      *string `json:"due_date"`
		ClearDueDate bool    `json:"clear_due_date"`
	}

	// an empty body is an empty patch
	var req UpdateTaskRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		DueDate:      dueDate,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Task updated successfully", Data: dto.ToTaskDTO(*task)})
}

// DeleteTask soft deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Task deleted successfully"})
}

// parseDueDate accepts RFC3339 timestamps and plain dates
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := query.ParseTime(*raw)
	if err != nil {
		return nil, &query.ValidationError{Param: "due_date", Reason: err.Error()}
	}
	return &t, nil
}
