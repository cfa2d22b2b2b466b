package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"ustahub_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Notification types
const (
	NotificationTypeInvitationReceived = "invitation_received"
	NotificationTypeInvitationStatus   = "invitation_status"
	NotificationTypeContractReceived   = "contract_received"
	NotificationTypeContractStatus     = "contract_status"
	NotificationTypeRatingReceived     = "rating_received"
	NotificationTypeRatingResponse     = "rating_response"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(db *gorm.DB, notificationID string) error
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)

	// Factory methods for the engine's side-effect notifications.
	CreateInvitationNotification(db *gorm.DB, ustaID, invitationID string, invitationType models.InvitationType) error
	CreateInvitationStatusNotification(db *gorm.DB, customerID, invitationID string, status models.InvitationStatus) error
	CreateContractNotification(db *gorm.DB, ustaID, contractID string) error
	CreateContractStatusNotification(db *gorm.DB, userID, contractID string, status models.ContractStatus) error
	CreateRatingNotification(db *gorm.DB, ustaID, ratingID string, rating float64) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, notificationID string) error {
	result := db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) CreateInvitationNotification(db *gorm.DB, ustaID, invitationID string, invitationType models.InvitationType) error {
	data, _ := json.Marshal(map[string]string{"invitation_id": invitationID})
	return r.Create(db, &models.Notification{
		UserID:  ustaID,
		Type:    NotificationTypeInvitationReceived,
		Title:   "New invitation",
		Message: fmt.Sprintf("You received a %s invitation", invitationType),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateInvitationStatusNotification(db *gorm.DB, customerID, invitationID string, status models.InvitationStatus) error {
	data, _ := json.Marshal(map[string]string{"invitation_id": invitationID})
	return r.Create(db, &models.Notification{
		UserID:  customerID,
		Type:    NotificationTypeInvitationStatus,
		Title:   "Invitation update",
		Message: fmt.Sprintf("Your invitation was %s", status),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateContractNotification(db *gorm.DB, ustaID, contractID string) error {
	data, _ := json.Marshal(map[string]string{"contract_id": contractID})
	return r.Create(db, &models.Notification{
		UserID:  ustaID,
		Type:    NotificationTypeContractReceived,
		Title:   "New contract",
		Message: "You received a contract offer",
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateContractStatusNotification(db *gorm.DB, userID, contractID string, status models.ContractStatus) error {
	data, _ := json.Marshal(map[string]string{"contract_id": contractID})
	return r.Create(db, &models.Notification{
		UserID:  userID,
		Type:    NotificationTypeContractStatus,
		Title:   "Contract update",
		Message: fmt.Sprintf("Contract was %s", status),
		Data:    datatypes.JSON(data),
	})
}

func (r *NotificationRepositoryImpl) CreateRatingNotification(db *gorm.DB, ustaID, ratingID string, rating float64) error {
	data, _ := json.Marshal(map[string]string{"rating_id": ratingID})
	return r.Create(db, &models.Notification{
		UserID:  ustaID,
		Type:    NotificationTypeRatingReceived,
		Title:   "New rating",
		Message: fmt.Sprintf("You received a %.1f star rating", rating),
		Data:    datatypes.JSON(data),
	})
}
