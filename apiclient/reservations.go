package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"beu/models"
)

func (c *Client) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	q := url.Values{}
	if filter.From != "" {
		q.Set("date_from", filter.From)
	}
	if filter.To != "" {
		q.Set("date_to", filter.To)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Role != "" {
		q.Set("role", filter.Role)
	}
	return getList[models.Reservation](ctx, c, "reservations.list", "/reservations/", q)
}

func (c *Client) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.do(ctx, "reservations.get", http.MethodGet, "/reservations/"+escape(id)+"/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.do(ctx, "reservations.create", http.MethodPost, "/reservations/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.do(ctx, "reservations.confirm", http.MethodPost, "/reservations/"+escape(id)+"/confirm/", nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RejectReservation(ctx context.Context, id string, req models.RejectReservationRequest) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.do(ctx, "reservations.reject", http.MethodPost, "/reservations/"+escape(id)+"/reject/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
