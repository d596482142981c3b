package notification

import (
	"context"
	"time"

	"gorm.io/gorm"

	"BloodLink/entities"
)

type (
	NotificationRepository interface {
		Create(ctx context.Context, notification *entities.Notification) error
		MarkSent(ctx context.Context, id string, at time.Time) error
		GetByID(ctx context.Context, id string) (*entities.Notification, error)
		ListByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Notification, int64, error)
		UnreadCount(ctx context.Context, userID string) (int64, error)
		MarkRead(ctx context.Context, id string) error
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_sent": true,
			"sent_at": at,
		}).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*entities.Notification, error) {
	var notification entities.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ? AND delivery_method = ?", userID, false, entities.ChannelSystem).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
