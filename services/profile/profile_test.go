package profile

import (
	"context"
	"errors"
	"testing"

	"beu/apiclient"
	"beu/models"

	"go.uber.org/zap"
)

type mockProfileAPI struct {
	profile  *models.PublicProfile
	err      error
	services []models.ServiceOffering
	created  int
}

func (m *mockProfileAPI) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	return m.profile, m.err
}

func (m *mockProfileAPI) ListServices(ctx context.Context, profileID string) ([]models.ServiceOffering, error) {
	return m.services, m.err
}

func (m *mockProfileAPI) CreateService(ctx context.Context, svc models.ServiceOffering) (*models.ServiceOffering, error) {
	m.created++
	svc.ID = "s1"
	return &svc, nil
}

func (m *mockProfileAPI) UpdateService(ctx context.Context, id string, svc models.ServiceOffering) (*models.ServiceOffering, error) {
	svc.ID = id
	return &svc, nil
}

func (m *mockProfileAPI) ListCustomServices(ctx context.Context) ([]models.CustomService, error) {
	return nil, m.err
}

func (m *mockProfileAPI) CreateCustomService(ctx context.Context, svc models.CustomService) (*models.CustomService, error) {
	m.created++
	return &svc, nil
}

func (m *mockProfileAPI) UpdateCustomService(ctx context.Context, id string, svc models.CustomService) (*models.CustomService, error) {
	return &svc, nil
}

func TestPublicProfileNotFoundMeansNoProfileYet(t *testing.T) {
	svc := NewDefaultProfileService(&mockProfileAPI{err: &apiclient.APIError{StatusCode: 404}}, zap.NewNop())
	view, err := svc.PublicProfile(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if view.Exists || view.Profile != nil {
		t.Errorf("view = %+v, want exists=false", view)
	}
}

func TestPublicProfileFound(t *testing.T) {
	svc := NewDefaultProfileService(&mockProfileAPI{profile: &models.PublicProfile{ID: "p1"}}, zap.NewNop())
	view, err := svc.PublicProfile(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if !view.Exists || view.Profile.ID != "p1" {
		t.Errorf("view = %+v", view)
	}
}

func TestPublicProfileOtherErrorsPropagate(t *testing.T) {
	svc := NewDefaultProfileService(&mockProfileAPI{err: &apiclient.APIError{StatusCode: 500}}, zap.NewNop())
	if _, err := svc.PublicProfile(context.Background(), "p1"); apiclient.StatusCode(err) != 500 {
		t.Errorf("err = %v", err)
	}
}

func TestServicesNotFoundIsEmpty(t *testing.T) {
	svc := NewDefaultProfileService(&mockProfileAPI{err: &apiclient.APIError{StatusCode: 404}}, zap.NewNop())
	items, err := svc.Services(context.Background(), "p1")
	if err != nil || items == nil || len(items) != 0 {
		t.Errorf("items = %#v, err = %v", items, err)
	}
}

func TestCreateServiceValidation(t *testing.T) {
	api := &mockProfileAPI{}
	svc := NewDefaultProfileService(api, zap.NewNop())
	bad := []models.ServiceOffering{
		{Name: " ", Price: 100, DurationMin: 30},
		{Name: "Corte", Price: -1, DurationMin: 30},
		{Name: "Corte", Price: 100, DurationMin: 0},
	}
	for _, b := range bad {
		if _, err := svc.CreateService(context.Background(), b); !errors.Is(err, ErrInvalidService) {
			t.Errorf("%+v: err = %v", b, err)
		}
	}
	if _, err := svc.CreateCustomService(context.Background(), models.CustomService{Name: "", DurationMin: 10}); !errors.Is(err, ErrInvalidService) {
		t.Errorf("custom service: err = %v", err)
	}
	if api.created != 0 {
		t.Errorf("backend called %d times for invalid services", api.created)
	}
	if _, err := svc.CreateService(context.Background(), models.ServiceOffering{Name: "Corte", Price: 150, DurationMin: 45}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateService(context.Background(), "s1", models.ServiceOffering{Price: -5}); !errors.Is(err, ErrInvalidService) {
		t.Errorf("update: err = %v", err)
	}
}
