package apiclient

import (
	"context"
	"net/http"

	"beu/models"
)

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return getList[models.Notification](ctx, c, "notifications.list", "/notifications/", nil)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, "notifications.read", http.MethodPost, "/notifications/"+escape(id)+"/mark-as-read/", nil, struct{}{}, nil)
}

func (c *Client) MarkNotificationUnread(ctx context.Context, id string) error {
	return c.do(ctx, "notifications.unread", http.MethodPost, "/notifications/"+escape(id)+"/mark-as-unread/", nil, struct{}{}, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, "notifications.delete", http.MethodDelete, "/notifications/"+escape(id)+"/", nil, nil, nil)
}
