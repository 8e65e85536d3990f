package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lostfound_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// ListLimit caps how many notifications a single poll returns.
const ListLimit = 50

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id string) (*models.Notification, error)
	ListForRecipient(recipientID string) ([]models.Notification, error)
	UnreadCount(recipientID string) (int64, error)
	MarkAsRead(id string) error
	MarkAllAsRead(recipientID string) error
	Delete(id string) error
	DeleteByItem(itemID string) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) ListForRecipient(recipientID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Preload("Sender").Preload("Item").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(ListLimit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) UnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(id string) error {
	// Idempotent: marking an already-read record affects zero rows and is
	// still success. Existence is checked by the caller.
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(recipientID string) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
}

func (r *NotificationRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteByItem(itemID string) error {
	return r.db.Where("item_id = ?", itemID).Delete(&models.Notification{}).Error
}
