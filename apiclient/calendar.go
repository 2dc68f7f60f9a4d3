package apiclient

import (
	"context"
	"net/http"

	"beu/models"
)

func (c *Client) GetCalendarConnection(ctx context.Context) (*models.CalendarConnection, error) {
	var out models.CalendarConnection
	if err := c.do(ctx, "calendar.status", http.MethodGet, "/calendar/google/status/", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Provider == "" {
		out.Provider = "google"
	}
	return &out, nil
}

// TriggerCalendarSync asks the backend to push the user's schedule to the
// connected external calendar.
func (c *Client) TriggerCalendarSync(ctx context.Context) error {
	return c.do(ctx, "calendar.sync", http.MethodPost, "/calendar/google/sync/", nil, struct{}{}, nil)
}
