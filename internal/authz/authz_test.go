package authz

import (
	"testing"

	"github.com/mnakagawa/task-message-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanManageTask(t *testing.T) {
	tests := []struct {
		name   string
		task   *models.Task
		userID uint64
		want   bool
	}{
		{"owner", &models.Task{ID: 1, OwnerID: 7}, 7, true},
		{"not owner", &models.Task{ID: 1, OwnerID: 7}, 8, false},
		{"nil task", nil, 7, false},
		{"zero user", &models.Task{ID: 1, OwnerID: 7}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageTask(tt.task, tt.userID))
		})
	}
}

func TestCanManageMessage_KeyedToTaskOwner(t *testing.T) {
	task := &models.Task{ID: 1, OwnerID: 7}

	// The message author does not matter for manage rights, only the parent
	// task's owner does.
	assert.True(t, CanManageMessage(task, 7))
	assert.False(t, CanManageMessage(task, 8))
	assert.False(t, CanManageMessage(nil, 7))
}

func TestCanDeleteMessage_KeyedToMessageOwner(t *testing.T) {
	message := &models.Message{ID: 3, OwnerID: 8, TaskID: 1}

	// Delete is the asymmetric case: the task owner has no say unless they
	// also authored the message.
	assert.True(t, CanDeleteMessage(message, 8))
	assert.False(t, CanDeleteMessage(message, 7))
	assert.False(t, CanDeleteMessage(nil, 8))
}
