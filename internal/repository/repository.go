package repository

import (
	"github.com/mnakagawa/task-message-api/internal/models"
	"github.com/mnakagawa/task-message-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListAll retrieves every task, unfiltered
	ListAll() ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task together with its messages and collaborator rows
	Delete(id uint64) error

	// AttachUsers attaches collaborators to a task
	AttachUsers(taskID uint64, userIDs []uint64) error

	// DetachUsers removes collaborators from a task
	DetachUsers(taskID uint64, userIDs []uint64) error

	// CountUsersByIDs counts how many of the given user IDs exist
	CountUsersByIDs(userIDs []uint64) (int64, error)
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(message *models.Message) error

	// FindByID finds a message by ID
	FindByID(id uint64) (*models.Message, error)

	// Update updates a message
	Update(message *models.Message) error

	// Delete removes a message and reports how many rows were affected,
	// so callers can distinguish an already-gone message from a real delete
	Delete(id uint64) (int64, error)

	// ListByOwner lists a user's messages ordered by task_id ascending
	ListByOwner(ownerID uint64, params utils.PaginationParams) ([]models.Message, int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
