package model

type Notification struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
}

type GetNotificationsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type GetUnreadNotificationCountRequest struct{}

type GetUnreadNotificationCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type MarkNotificationReadRequest struct {
	ID int64 `uri:"id"`
}

type MarkNotificationReadResponse struct {
	Notification Notification `json:"notification"`
}

type SendNotificationRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type SendNotificationResponse struct {
	Notification Notification `json:"notification"`
}

type ServeNotificationProxyRequest struct{}
