package engine

import (
	"context"

	"github.com/pandamarket/backend/internal/domain/notification/event"
	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/internal/repository"
	"github.com/pandamarket/backend/pkg/idutil"
	"github.com/pandamarket/backend/pkg/xcontext"
)

// Notifier persists notifications and hands them to the dispatcher for
// live delivery.
type Notifier struct {
	notificationRepo repository.NotificationRepository
	dispatcher       *Dispatcher
}

func NewNotifier(
	notificationRepo repository.NotificationRepository,
	dispatcher *Dispatcher,
) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
}

// Notify runs as a side effect of another mutation. It never returns an
// error, a failure here must not undo or fail the mutation that caused it.
// The live dispatch is still attempted when the write fails, a connected
// client loses nothing by hearing about a row that was not stored.
func (n *Notifier) Notify(ctx context.Context, userID, message string) {
	notification := n.build(userID, message)
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist notification for %s: %v", userID, err)
	}

	n.dispatch(ctx, notification)
}

// NotifyAll is Notify over a recipient list. Each recipient is handled
// independently, one failing write is logged and the rest continue.
func (n *Notifier) NotifyAll(ctx context.Context, userIDs []string, message string) {
	for _, userID := range userIDs {
		n.Notify(ctx, userID, message)
	}
}

// Send is the explicit delivery operation. Unlike Notify, a storage
// failure here is the caller's problem and is returned.
func (n *Notifier) Send(ctx context.Context, userID, message string) (*entity.Notification, error) {
	notification := n.build(userID, message)
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	n.dispatch(ctx, notification)
	return notification, nil
}

func (n *Notifier) build(userID, message string) *entity.Notification {
	return &entity.Notification{
		SnowflakeBase: entity.SnowflakeBase{ID: idutil.NextID()},
		UserID:        userID,
		Message:       message,
	}
}

func (n *Notifier) dispatch(ctx context.Context, notification *entity.Notification) {
	ev, err := event.New(notification.UserID, event.NewNotificationEvent{
		Notification: model.ConvertNotification(notification),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot build notification event: %v", err)
		return
	}

	n.dispatcher.Dispatch(ctx, ev)
}
