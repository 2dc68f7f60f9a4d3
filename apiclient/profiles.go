package apiclient

import (
	"context"
	"net/http"

	"beu/models"
)

func (c *Client) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	var out models.PublicProfile
	if err := c.do(ctx, "profiles.public", http.MethodGet, "/profiles/"+escape(id)+"/public/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListServices(ctx context.Context, profileID string) ([]models.ServiceOffering, error) {
	return getList[models.ServiceOffering](ctx, c, "services.list", "/profiles/"+escape(profileID)+"/services/", nil)
}

func (c *Client) CreateService(ctx context.Context, svc models.ServiceOffering) (*models.ServiceOffering, error) {
	var out models.ServiceOffering
	if err := c.do(ctx, "services.create", http.MethodPost, "/services/", nil, svc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateService(ctx context.Context, id string, svc models.ServiceOffering) (*models.ServiceOffering, error) {
	var out models.ServiceOffering
	if err := c.do(ctx, "services.update", http.MethodPatch, "/services/"+escape(id)+"/", nil, svc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCustomServices(ctx context.Context) ([]models.CustomService, error) {
	return getList[models.CustomService](ctx, c, "custom_services.list", "/custom-services/", nil)
}

func (c *Client) CreateCustomService(ctx context.Context, svc models.CustomService) (*models.CustomService, error) {
	var out models.CustomService
	if err := c.do(ctx, "custom_services.create", http.MethodPost, "/custom-services/", nil, svc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomService(ctx context.Context, id string, svc models.CustomService) (*models.CustomService, error) {
	var out models.CustomService
	if err := c.do(ctx, "custom_services.update", http.MethodPatch, "/custom-services/"+escape(id)+"/", nil, svc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
