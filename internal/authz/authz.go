// Package authz holds the ownership predicates shared by every service
// operation. The functions are pure: callers load entities first, authz only
// compares owners.
package authz

import (
	"github.com/mnakagawa/task-message-api/internal/models"
)

// CanManageTask reports whether userID owns the task. Governs task update,
// close and collaborator changes.
func CanManageTask(task *models.Task, userID uint64) bool {
	if task == nil {
		return false
	}
	return task.OwnerID == userID
}

// CanManageMessage reports whether userID may create, update or show messages
// under the given parent task. The rule is keyed to the task's owner, not the
// message's own owner, and collaborator membership does not widen it.
func CanManageMessage(task *models.Task, userID uint64) bool {
	return CanManageTask(task, userID)
}

// CanDeleteMessage reports whether userID may delete the message. Delete is
// the one operation keyed to the message's own owner.
func CanDeleteMessage(message *models.Message, userID uint64) bool {
	if message == nil {
		return false
	}
	return message.OwnerID == userID
}
