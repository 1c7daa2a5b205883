package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a threaded note attached to a task. TaskID is set once at
// creation and never reassigned; a message is deleted together with its task.
type Message struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Subject   string         `gorm:"type:varchar(255);not null" json:"subject"`
	Message   string         `gorm:"type:text" json:"message"`
	OwnerID   uint64         `gorm:"not null" json:"owner_id"`
	TaskID    uint64         `gorm:"not null;index" json:"task_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Task  Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
