package services

import (
	"errors"
	"fmt"

	"github.com/mnakagawa/task-message-api/internal/authz"
	"github.com/mnakagawa/task-message-api/internal/models"
	"github.com/mnakagawa/task-message-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	OwnerID     uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title       string
	Description string
}

// ListTasks returns every task. The listing is not scoped to the caller;
// every authenticated user sees all tasks.
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task by id. No ownership check applies to reads.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Owner", "Collaborators")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask persists a new task owned by the current user
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusOpen,
		OwnerID:     input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Owner")
}

// UpdateTask overwrites title and description. Owner and status are never
// touched here, and a missing id is an explicit not-found, never a nil
// dereference.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Title = input.Title
	task.Description = input.Description

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// CloseTask transitions a task to closed. Only the owner may close it.
func (s *TaskService) CloseTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.CanManageTask(task, actorID) {
		return nil, ErrNotTaskOwner
	}

	task.Status = models.TaskStatusClosed

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to close task: %w", err)
	}

	return task, nil
}

// AttachCollaborators attaches users to a task. Collaborator membership does
// not grant message-management rights; only the owner may change it.
func (s *TaskService) AttachCollaborators(taskID, actorID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.CanManageTask(task, actorID) {
		return ErrNotTaskOwner
	}

	ids := uniqueUint64(userIDs)

	count, err := s.taskRepo.CountUsersByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(ids) {
		return ErrUnknownCollaborator
	}

	if err := s.taskRepo.AttachUsers(task.ID, ids); err != nil {
		return fmt.Errorf("failed to attach collaborators: %w", err)
	}

	return nil
}

// DetachCollaborators removes users from a task
func (s *TaskService) DetachCollaborators(taskID, actorID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.CanManageTask(task, actorID) {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.DetachUsers(task.ID, uniqueUint64(userIDs)); err != nil {
		return fmt.Errorf("failed to detach collaborators: %w", err)
	}

	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
