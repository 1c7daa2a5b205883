package dto

import (
	"time"

	"github.com/mnakagawa/task-message-api/internal/models"
	"github.com/mnakagawa/task-message-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	OwnerID       uint64            `json:"owner_id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Owner         *UserDTO          `json:"owner,omitempty"`
	Collaborators []UserDTO         `json:"collaborators,omitempty"`
}

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64    `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	OwnerID   uint64    `json:"owner_id"`
	TaskID    uint64    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageListResponse represents the paginated message index
type MessageListResponse struct {
	Messages   []MessageDTO             `json:"messages"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include owner if preloaded
	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}

	// Include collaborators if preloaded
	if len(task.Collaborators) > 0 {
		dto.Collaborators = make([]UserDTO, 0, len(task.Collaborators))
		for _, collab := range task.Collaborators {
			if collab.User.ID != 0 {
				dto.Collaborators = append(dto.Collaborators, ToUserDTO(collab.User))
			} else {
				dto.Collaborators = append(dto.Collaborators, UserDTO{ID: collab.UserID})
			}
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID,
		Subject:   message.Subject,
		Message:   message.Message,
		OwnerID:   message.OwnerID,
		TaskID:    message.TaskID,
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
}

// ToMessageListResponse converts messages plus paging metadata
func ToMessageListResponse(messages []models.Message, params utils.PaginationParams, total int64) MessageListResponse {
	items := make([]MessageDTO, len(messages))
	for i, message := range messages {
		items[i] = ToMessageDTO(message)
	}

	return MessageListResponse{
		Messages: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
