package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mnakagawa/task-message-api/internal/authz"
	"github.com/mnakagawa/task-message-api/internal/models"
	"github.com/mnakagawa/task-message-api/internal/repository"
	"github.com/mnakagawa/task-message-api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MessageService handles message business logic. Every operation takes the
// acting user explicitly; nothing is read from ambient state.
type MessageService struct {
	messageRepo repository.MessageRepository
	taskRepo    repository.TaskRepository
	log         logrus.FieldLogger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repository.MessageRepository, taskRepo repository.TaskRepository, log logrus.FieldLogger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		taskRepo:    taskRepo,
		log:         log,
	}
}

// MessageInput represents the writable fields of a message. Owner and task
// are never taken from the request body.
type MessageInput struct {
	Subject string
	Message string
}

// CreateMessage persists a message under a task. The actor must own the
// parent task; the message owner is stamped from the actor, the task id from
// the route, regardless of anything in the request body.
func (s *MessageService) CreateMessage(taskID uint64, input MessageInput, actorID uint64) (*models.Message, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if task == nil || !authz.CanManageMessage(task, actorID) {
		return nil, &TaskOwnershipError{TaskID: taskID, Action: "created"}
	}

	message := &models.Message{
		Subject: input.Subject,
		Message: input.Message,
		OwnerID: actorID,
		TaskID:  task.ID,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// UpdateMessage overwrites subject and body. The parent task is derived from
// the stored message; owner and task_id are never mutated.
func (s *MessageService) UpdateMessage(messageID uint64, input MessageInput, actorID uint64) (*models.Message, error) {
	message, err := s.findMessage(messageID)
	if err != nil {
		return nil, err
	}

	taskID := message.TaskID

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if task == nil || !authz.CanManageMessage(task, actorID) {
		return nil, &TaskOwnershipError{TaskID: taskID, Action: "updated"}
	}

	if message.TaskID != task.ID {
		return nil, &MessageTaskMismatchError{TaskID: taskID, MessageID: messageID}
	}

	message.Subject = input.Subject
	message.Message = input.Message

	if err := s.messageRepo.Update(message); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	return message, nil
}

// ShowMessage returns a message after the parent-owner check and records the
// view event. The log entry is part of the contract, not debug output.
func (s *MessageService) ShowMessage(messageID, actorID uint64) (*models.Message, error) {
	message, err := s.findMessage(messageID)
	if err != nil {
		return nil, err
	}

	taskID := message.TaskID

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if task == nil || !authz.CanManageMessage(task, actorID) {
		return nil, &TaskOwnershipError{TaskID: taskID, Action: "shown"}
	}

	if message.TaskID != task.ID {
		return nil, &MessageTaskMismatchError{TaskID: taskID, MessageID: messageID}
	}

	s.log.Infof("Message %s was viewed [%d]", message.Subject, time.Now().Unix())

	return message, nil
}

// DeleteMessage removes a message. Authorization is keyed to the message's
// own author, not the task owner. The returned flag reports whether a row was
// actually removed; zero rows is not an error, the caller just gets no
// success payload.
func (s *MessageService) DeleteMessage(messageID, actorID uint64) (*models.Message, bool, error) {
	message, err := s.findMessage(messageID)
	if err != nil {
		return nil, false, err
	}

	if !authz.CanDeleteMessage(message, actorID) {
		return message, false, &MessageOwnershipError{Subject: message.Subject}
	}

	rows, err := s.messageRepo.Delete(message.ID)
	if err != nil {
		return message, false, fmt.Errorf("failed to delete message: %w", err)
	}

	return message, rows > 0, nil
}

// ListMessages returns the actor's own messages ordered by task_id ascending,
// five per page. The filter is message ownership, not task ownership.
func (s *MessageService) ListMessages(actorID uint64, params utils.PaginationParams) ([]models.Message, int64, error) {
	messages, total, err := s.messageRepo.ListByOwner(actorID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, total, nil
}

// findTask resolves a task id, mapping a missing row to nil so callers fold
// "no such task" into the ownership failure without leaking existence.
func (s *MessageService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *MessageService) findMessage(messageID uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return message, nil
}
