package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/pkg/xcontext"
	"github.com/pandamarket/backend/pkg/xredis"
)

const unreadCountCacheTTL = 30 * time.Second

func unreadCountKey(userID string) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id int64, userID string) (*entity.Notification, error)
}

type notificationRepository struct {
	redisClient xredis.Client
}

func NewNotificationRepository(redisClient xredis.Client) *notificationRepository {
	return &notificationRepository{redisClient: redisClient}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if err := xcontext.DB(ctx).Create(notification).Error; err != nil {
		return err
	}

	r.invalidateUnreadCount(ctx, notification.UserID)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	var result entity.Notification
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *notificationRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	key := unreadCountKey(userID)
	if cached, err := r.redisClient.Get(ctx, key); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	// The cache is best-effort, the database count above is authoritative.
	if err := r.redisClient.Set(ctx, key, strconv.FormatInt(count, 10), unreadCountCacheTTL); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot cache unread count of %s: %v", userID, err)
	}

	return count, nil
}

// MarkRead flips the read flag of a notification owned by userID. A
// notification of another user is indistinguishable from a missing one,
// both return gorm.ErrRecordNotFound.
func (r *notificationRepository) MarkRead(
	ctx context.Context, id int64, userID string,
) (*entity.Notification, error) {
	var notification entity.Notification
	err := xcontext.DB(ctx).Take(&notification, "id=? AND user_id=?", id, userID).Error
	if err != nil {
		return nil, err
	}

	if notification.IsRead {
		return &notification, nil
	}

	err = xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("id=?", id).
		Update("is_read", true).Error
	if err != nil {
		return nil, err
	}

	notification.IsRead = true
	r.invalidateUnreadCount(ctx, userID)
	return &notification, nil
}

func (r *notificationRepository) invalidateUnreadCount(ctx context.Context, userID string) {
	if err := r.redisClient.Del(ctx, unreadCountKey(userID)); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot invalidate unread count of %s: %v", userID, err)
	}
}
