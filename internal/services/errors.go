package services

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotTaskOwner    = errors.New("only the task owner can perform this action")
	ErrTitleRequired   = errors.New("title is required")

	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")

	ErrNoUserIDsProvided   = errors.New("at least one user ID is required")
	ErrUnknownCollaborator = errors.New("one or more users do not exist")
)

// TaskOwnershipError is returned when a message operation is refused because
// the actor does not own the parent task. The text is the API's public error
// body; it does not reveal whether the task exists.
type TaskOwnershipError struct {
	TaskID uint64
	Action string // past participle: "created", "updated", "shown"
}

func (e *TaskOwnershipError) Error() string {
	return fmt.Sprintf("task id %d message cannot be %s because you are not the owner of it", e.TaskID, e.Action)
}

// MessageOwnershipError is returned when a delete is refused because the
// actor did not author the message.
type MessageOwnershipError struct {
	Subject string
}

func (e *MessageOwnershipError) Error() string {
	return fmt.Sprintf("Message [%s] cannot be deleted because you are not the owner of it", e.Subject)
}

// MessageTaskMismatchError reports a message whose task_id does not match the
// loaded task. Given how the task is resolved it should be unreachable, but
// the response is part of the API contract.
type MessageTaskMismatchError struct {
	TaskID    uint64
	MessageID uint64
}

func (e *MessageTaskMismatchError) Error() string {
	return fmt.Sprintf("task id %d does not have related message with id %d", e.TaskID, e.MessageID)
}
