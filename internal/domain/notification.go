package domain

import (
	"context"
	"errors"

	"github.com/pandamarket/backend/internal/domain/notification/engine"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetList(ctx context.Context, req *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	GetUnreadCount(ctx context.Context, req *model.GetUnreadNotificationCountRequest) (*model.GetUnreadNotificationCountResponse, error)
	MarkRead(ctx context.Context, req *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	Send(ctx context.Context, req *model.SendNotificationRequest) (*model.SendNotificationResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	notifier         *engine.Notifier
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	notifier *engine.Notifier,
) *notificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Offset < 0 || req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid pagination parameters")
	}

	limit := req.Limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", cfg.MaxLimit)
	}

	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	converted := make([]model.Notification, 0, len(notifications))
	for i := range notifications {
		converted = append(converted, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{Notifications: converted}, nil
}

func (d *notificationDomain) GetUnreadCount(
	ctx context.Context, req *model.GetUnreadNotificationCountRequest,
) (*model.GetUnreadNotificationCountResponse, error) {
	count, err := d.notificationRepo.CountUnread(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUnreadNotificationCountResponse{UnreadCount: count}, nil
}

// MarkRead only touches the caller's own rows. Another user's notification
// id answers exactly like a nonexistent one.
func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	notification, err := d.notificationRepo.MarkRead(ctx, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{Notification: model.ConvertNotification(notification)}, nil
}

// Send is the explicit delivery operation, so unlike the ambient producers
// a storage failure is returned to the caller.
func (d *notificationDomain) Send(
	ctx context.Context, req *model.SendNotificationRequest,
) (*model.SendNotificationResponse, error) {
	if req.Message == "" {
		return nil, errorx.New(errorx.BadRequest, "Message must not be empty")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	notification, err := d.notifier.Send(ctx, req.UserID, req.Message)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send notification: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SendNotificationResponse{Notification: model.ConvertNotification(notification)}, nil
}
