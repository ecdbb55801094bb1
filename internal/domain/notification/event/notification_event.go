package event

import "github.com/pandamarket/backend/internal/model"

const NewNotificationOp = "new-notification"

// NewNotificationEvent carries the full stored notification record, so a
// client can render it without refetching the list.
type NewNotificationEvent struct {
	model.Notification
}

func (e NewNotificationEvent) Op() string {
	return NewNotificationOp
}
