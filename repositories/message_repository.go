package repositories

import (
	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/models"
)

type MessageRepo interface {
	CreateMessage(msg *models.Message) error
	GetMessageByID(id uint) (models.Message, error)
	ListReceived(userID uint, skip, limit int) ([]models.Message, error)
	ListSent(userID uint, skip, limit int) ([]models.Message, error)
	CountUnread(userID uint) (int64, error)
	SaveMessage(msg *models.Message) error
	DeleteMessage(id uint) error

	CreateAttachment(att *models.MessageAttachment) error
	ListAttachments(messageID uint) ([]models.MessageAttachment, error)
	DeleteAttachments(messageID uint) error
}

type DBMessageRepo struct{}

func (r *DBMessageRepo) CreateMessage(msg *models.Message) error {
	return db.DB.Create(msg).Error
}

func (r *DBMessageRepo) GetMessageByID(id uint) (models.Message, error) {
	var msg models.Message
	err := db.DB.Preload("Sender").Preload("Recipient").First(&msg, id).Error
	return msg, err
}

func (r *DBMessageRepo) ListReceived(userID uint, skip, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := db.DB.Where("recipient_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Offset(skip).Find(&messages).Error
	return messages, err
}

func (r *DBMessageRepo) ListSent(userID uint, skip, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := db.DB.Where("sender_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Offset(skip).Find(&messages).Error
	return messages, err
}

func (r *DBMessageRepo) CountUnread(userID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *DBMessageRepo) SaveMessage(msg *models.Message) error {
	return db.DB.Save(msg).Error
}

func (r *DBMessageRepo) DeleteMessage(id uint) error {
	return db.DB.Delete(&models.Message{}, id).Error
}

func (r *DBMessageRepo) CreateAttachment(att *models.MessageAttachment) error {
	return db.DB.Create(att).Error
}

func (r *DBMessageRepo) ListAttachments(messageID uint) ([]models.MessageAttachment, error) {
	var attachments []models.MessageAttachment
	err := db.DB.Where("message_id = ?", messageID).Find(&attachments).Error
	return attachments, err
}

func (r *DBMessageRepo) DeleteAttachments(messageID uint) error {
	return db.DB.Where("message_id = ?", messageID).Delete(&models.MessageAttachment{}).Error
}
