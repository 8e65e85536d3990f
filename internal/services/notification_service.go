package services

import (
	"gorm.io/gorm"

	"lostfound_backend/internal/repositories"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/pkg/apperrors"
)

// NotificationService is the read/ack side of the fan-out: notifications
// are created by the claim and comment workflows, and only listed,
// marked read, or deleted here.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (s *NotificationService) ListForRecipient(db *gorm.DB, recipientID string) ([]dto.NotificationResponse, error) {
	notifications, err := repositories.NewNotificationRepository(db).ListForRecipient(recipientID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NewNotificationResponse(n))
	}
	return responses, nil
}

func (s *NotificationService) UnreadCount(db *gorm.DB, recipientID string) (int64, error) {
	count, err := repositories.NewNotificationRepository(db).UnreadCount(recipientID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// MarkAsRead flips one notification to read. Idempotent: an already-read
// record is a no-op, not an error.
func (s *NotificationService) MarkAsRead(db *gorm.DB, recipientID, notificationID string) error {
	notificationRepo := repositories.NewNotificationRepository(db)

	notification, err := notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notifications", "Notification not found")
		}
		return apperrors.InternalError(err)
	}

	if notification.RecipientID != recipientID {
		return apperrors.NewForbiddenError("notifications", "Not authorized")
	}

	if err := notificationRepo.MarkAsRead(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(db *gorm.DB, recipientID string) error {
	if err := repositories.NewNotificationRepository(db).MarkAllAsRead(recipientID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) Delete(db *gorm.DB, recipientID, notificationID string) error {
	notificationRepo := repositories.NewNotificationRepository(db)

	notification, err := notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("notifications", "Notification not found")
		}
		return apperrors.InternalError(err)
	}

	if notification.RecipientID != recipientID {
		return apperrors.NewForbiddenError("notifications", "Not authorized")
	}

	if err := notificationRepo.Delete(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
