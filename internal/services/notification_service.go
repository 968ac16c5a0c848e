// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
	"github.com/nexushub/webhub-backend/internal/models"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(userID uuid.UUID, notifType models.NotificationType, title, message string, data models.JSONB) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	// UnreadCount is computed over the returned page, not the whole
	// mailbox; unread items beyond the limit are not counted.
	UnreadCount int `json:"unread_count"`
}

func (s *NotificationService) List(userID uuid.UUID, limit int) (*NotificationPage, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	return &NotificationPage{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkRead flags one notification as read. Marking an already read
// notification succeeds without effect.
func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	notification, err := s.getOwned(id, userID)
	if err != nil {
		return err
	}
	if notification.Read {
		return nil
	}
	return s.db.Model(notification).Update("read", true).Error
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *NotificationService) Delete(id, userID uuid.UUID) error {
	notification, err := s.getOwned(id, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(notification).Error
}

func (s *NotificationService) getOwned(id, userID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, fmt.Errorf("%w: not your notification", apperror.ErrForbidden)
	}
	return &notification, nil
}
