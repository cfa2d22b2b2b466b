package services

import (
	"errors"

	"gorm.io/gorm"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/pkg/apperrors"
)

const notificationDomain = "notification"

type NotificationService interface {
	List(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(db *gorm.DB, notificationID, userID string) error
	UnreadCount(db *gorm.DB, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.FindByUser(db, userID, unreadOnly)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(db *gorm.DB, notificationID, userID string) error {
	notifications, err := s.notificationRepo.FindByUser(db, userID, false)
	if err != nil {
		return apperrors.StorageError(err)
	}

	owned := false
	for i := range notifications {
		if notifications[i].ID == notificationID {
			owned = true
			break
		}
	}
	if !owned {
		return apperrors.ErrNotFound(repositories.ErrNotificationNotFound, notificationDomain, "notification not found")
	}

	if err := s.notificationRepo.MarkAsRead(db, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, notificationDomain, "notification not found")
		}
		return apperrors.StorageError(err)
	}
	return nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return 0, apperrors.StorageError(err)
	}
	return count, nil
}
