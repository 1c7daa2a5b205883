package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedTasks     []Task             `gorm:"foreignKey:OwnerID" json:"-"`
	OwnedMessages  []Message          `gorm:"foreignKey:OwnerID" json:"-"`
	Collaborations []TaskCollaborator `gorm:"foreignKey:UserID" json:"-"`
}
