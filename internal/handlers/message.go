package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mnakagawa/task-message-api/internal/dto"
	apierrors "github.com/mnakagawa/task-message-api/internal/errors"
	"github.com/mnakagawa/task-message-api/internal/middleware"
	"github.com/mnakagawa/task-message-api/internal/services"
	"github.com/mnakagawa/task-message-api/internal/utils"
)

// MessageHandler coordinates message-related HTTP handlers. Error bodies stay
// generic so they leak nothing about other users' data; only the status codes
// distinguish the failure kinds.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// MessageRequest is the writable part of a message. Any owner or task_id in
// the body is ignored; those fields come from the session and the route.
type MessageRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message"`
}

// CreateMessage creates a message under a task
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.CreateMessage(taskID, services.MessageInput{
		Subject: req.Subject,
		Message: req.Message,
	}, userID)
	if err != nil {
		var ownership *services.TaskOwnershipError
		if errors.As(err, &ownership) {
			apierrors.Forbidden(c, ownership.Error())
			return
		}
		apierrors.InternalError(c, fmt.Sprintf("Message %s failed to create", req.Subject))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Message %s was created successfully", message.Subject),
	})
}

// UpdateMessage overwrites subject and body of a message
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messageID, ok := parseIDParam(c, "message_id")
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.UpdateMessage(messageID, services.MessageInput{
		Subject: req.Subject,
		Message: req.Message,
	}, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			apierrors.NotFound(c, fmt.Sprintf("there is no such message with id %d", messageID))
		default:
			var ownership *services.TaskOwnershipError
			var mismatch *services.MessageTaskMismatchError
			switch {
			case errors.As(err, &ownership):
				apierrors.Forbidden(c, ownership.Error())
			case errors.As(err, &mismatch):
				apierrors.Conflict(c, mismatch.Error())
			default:
				apierrors.InternalError(c, fmt.Sprintf("Message %s failed to update", req.Subject))
			}
		}
		return
	}

	// update responds 201, existing clients depend on it
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Message %s was updated successfully", message.Subject),
	})
}

// ShowMessage returns a message and records the view event
func (h *MessageHandler) ShowMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.ShowMessage(messageID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			apierrors.NotFound(c, fmt.Sprintf("there is no such message with id %d", messageID))
		default:
			var ownership *services.TaskOwnershipError
			var mismatch *services.MessageTaskMismatchError
			switch {
			case errors.As(err, &ownership):
				apierrors.Forbidden(c, ownership.Error())
			case errors.As(err, &mismatch):
				apierrors.Conflict(c, mismatch.Error())
			default:
				apierrors.InternalError(c, "Failed to fetch message")
			}
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTO(*message))
}

// DeleteMessage removes a message. When the store reports no deleted row the
// response is 200 with an empty body; that quirk is part of the contract.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, deleted, err := h.messageService.DeleteMessage(messageID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			apierrors.NotFound(c, fmt.Sprintf("there is no such message with id %d", messageID))
		default:
			var ownership *services.MessageOwnershipError
			if errors.As(err, &ownership) {
				apierrors.Forbidden(c, ownership.Error())
				return
			}
			apierrors.InternalError(c, "Failed to delete message")
		}
		return
	}

	if !deleted {
		c.Status(http.StatusOK)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Message [%s] was deleted successfully", message.Subject),
	})
}

// ListMessages returns the caller's messages, five per page, ordered by
// ascending task_id
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetMessagePaginationParams(c)

	messages, total, err := h.messageService.ListMessages(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageListResponse(messages, params, total))
}
