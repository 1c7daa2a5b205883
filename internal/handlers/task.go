package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mnakagawa/task-message-api/internal/dto"
	apierrors "github.com/mnakagawa/task-message-api/internal/errors"
	"github.com/mnakagawa/task-message-api/internal/middleware"
	"github.com/mnakagawa/task-message-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task. The listing is visible to any authenticated
// user and is not paginated.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task by id. There is no ownership check; any
// authenticated user may view any task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask overwrites title and description
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CloseTask marks a task closed. Owner only.
func (h *TaskHandler) CloseTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.CloseTask(taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrNotTaskOwner):
			apierrors.Forbidden(c, "Only the task owner can close this task")
		default:
			apierrors.InternalError(c, "Failed to close task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AttachCollaborators attaches users to a task
func (h *TaskHandler) AttachCollaborators(c *gin.Context) {
	h.changeCollaborators(c, h.taskService.AttachCollaborators, "Users attached successfully")
}

// DetachCollaborators removes users from a task
func (h *TaskHandler) DetachCollaborators(c *gin.Context) {
	h.changeCollaborators(c, h.taskService.DetachCollaborators, "Users detached successfully")
}

func (h *TaskHandler) changeCollaborators(c *gin.Context, op func(taskID, actorID uint64, userIDs []uint64) error, successMessage string) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CollaboratorRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req CollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := op(taskID, userID, req.UserIDs); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrNotTaskOwner):
			apierrors.Forbidden(c, "Only the task owner can change collaborators")
		case errors.Is(err, services.ErrNoUserIDsProvided),
			errors.Is(err, services.ErrUnknownCollaborator):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to change collaborators")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": successMessage,
	})
}

// DestroyTask is routed but not implemented; clients get a 501 instead of a
// 404.
func (h *TaskHandler) DestroyTask(c *gin.Context) {
	apierrors.NotImplemented(c)
}

// CreateTaskForm mirrors the resource-controller create-form route; the API
// has no form to serve.
func (h *TaskHandler) CreateTaskForm(c *gin.Context) {
	apierrors.NotImplemented(c)
}

// EditTaskForm mirrors the resource-controller edit-form route; the API has
// no form to serve.
func (h *TaskHandler) EditTaskForm(c *gin.Context) {
	apierrors.NotImplemented(c)
}

// parseIDParam parses a numeric path parameter, responding with 400 on junk
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
