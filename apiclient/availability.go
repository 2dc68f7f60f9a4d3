package apiclient

import (
	"context"
	"net/http"

	"beu/models"
)

type availabilityPayload struct {
	Schedule []models.DaySchedule `json:"schedule"`
}

// GetAvailability returns the stored weekly availability.
func (c *Client) GetAvailability(ctx context.Context) ([]models.DaySchedule, error) {
	var out availabilityPayload
	if err := c.do(ctx, "availability.get", http.MethodGet, "/availability/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Schedule, nil
}

// SaveAvailability replaces the weekly availability with the given days.
func (c *Client) SaveAvailability(ctx context.Context, days []models.DaySchedule) error {
	return c.do(ctx, "availability.save", http.MethodPut, "/availability/", nil, availabilityPayload{Schedule: days}, nil)
}
