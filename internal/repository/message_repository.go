package repository

import (
	"github.com/mnakagawa/task-message-api/internal/database"
	"github.com/mnakagawa/task-message-api/internal/models"
	"github.com/mnakagawa/task-message-api/internal/utils"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID
func (r *GormMessageRepository) FindByID(id uint64) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Update updates a message
func (r *GormMessageRepository) Update(message *models.Message) error {
	return r.db.Save(message).Error
}

// Delete removes a message. The affected row count is returned instead of an
// error when nothing matched: a delete of an already-gone message is not a
// failure, it just produces no success payload.
func (r *GormMessageRepository) Delete(id uint64) (int64, error) {
	result := r.db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListByOwner lists a user's messages ordered by task_id ascending
func (r *GormMessageRepository) ListByOwner(ownerID uint64, params utils.PaginationParams) ([]models.Message, int64, error) {
	var messages []models.Message

	query := r.db.Model(&models.Message{}).Where("messages.owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("messages.task_id ASC").
		Scopes(database.Paginate(params)).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
