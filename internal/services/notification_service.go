// internal/services/notification_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/almoxdev/estoque-backend/internal/models"
	"github.com/almoxdev/estoque-backend/internal/utils"
)

type NotificationService struct {
	db *gorm.DB
}

type NotificationRequest struct {
	Title    string          `json:"title" validate:"required"`
	Message  string          `json:"message" validate:"required"`
	Severity models.Severity `json:"severity" validate:"required,oneof=success error warning info"`
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify records a notification without blocking the caller. Failures are
// logged and never propagate to the operation that triggered them.
func (s *NotificationService) Notify(title, message string, severity models.Severity) {
	if s.db == nil {
		return
	}
	go func() {
		notification := &models.Notification{
			Title:    title,
			Message:  message,
			Severity: severity,
		}
		if err := s.db.Create(notification).Error; err != nil {
			logrus.WithError(err).WithField("title", title).Error("Failed to record notification")
		}
	}()
}

func (s *NotificationService) Create(req *NotificationRequest) (*models.Notification, error) {
	notification := &models.Notification{
		Title:    req.Title,
		Message:  req.Message,
		Severity: req.Severity,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

func (s *NotificationService) List(params utils.PaginationParams, unreadOnly bool) (*utils.PaginationResult, error) {
	var notifications []models.Notification
	var total int64

	query := s.db.Model(&models.Notification{})
	if unreadOnly {
		query = query.Where("status = ?", "unread")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = utils.ApplyPagination(query, params)
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	return &result, nil
}

func (s *NotificationService) MarkRead(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}

	now := time.Now()
	notification.Status = "read"
	notification.ReadAt = &now

	if err := s.db.Save(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	return &notification, nil
}

func (s *NotificationService) MarkAllRead() error {
	now := time.Now()
	err := s.db.Model(&models.Notification{}).
		Where("status = ?", "unread").
		Updates(map[string]interface{}{"status": "read", "read_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to update notifications: %w", err)
	}
	return nil
}
