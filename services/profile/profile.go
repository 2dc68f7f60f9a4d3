package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beu/apiclient"
	"beu/models"

	"go.uber.org/zap"
)

// ProfileAPI is the part of the backend client the service needs.
type ProfileAPI interface {
	GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error)
	ListServices(ctx context.Context, profileID string) ([]models.ServiceOffering, error)
	CreateService(ctx context.Context, svc models.ServiceOffering) (*models.ServiceOffering, error)
	UpdateService(ctx context.Context, id string, svc models.ServiceOffering) (*models.ServiceOffering, error)
	ListCustomServices(ctx context.Context) ([]models.CustomService, error)
	CreateCustomService(ctx context.Context, svc models.CustomService) (*models.CustomService, error)
	UpdateCustomService(ctx context.Context, id string, svc models.CustomService) (*models.CustomService, error)
}

type ProfileService interface {
	PublicProfile(ctx context.Context, id string) (*models.ProfileView, error)
	Services(ctx context.Context, profileID string) ([]models.ServiceOffering, error)
	CreateService(ctx context.Context, svc models.ServiceOffering) (*models.ServiceOffering, error)
	UpdateService(ctx context.Context, id string, svc models.ServiceOffering) (*models.ServiceOffering, error)
	CustomServices(ctx context.Context) ([]models.CustomService, error)
	CreateCustomService(ctx context.Context, svc models.CustomService) (*models.CustomService, error)
	UpdateCustomService(ctx context.Context, id string, svc models.CustomService) (*models.CustomService, error)
}

// ErrInvalidService is returned for service payloads the backend would refuse.
var ErrInvalidService = errors.New("invalid service")

type DefaultProfileService struct {
	API    ProfileAPI
	Logger *zap.Logger
}

func NewDefaultProfileService(api ProfileAPI, logger *zap.Logger) *DefaultProfileService {
	return &DefaultProfileService{API: api, Logger: logger}
}

// PublicProfile treats a backend 404 as "no profile yet" rather than an error.
func (s *DefaultProfileService) PublicProfile(ctx context.Context, id string) (*models.ProfileView, error) {
	p, err := s.API.GetPublicProfile(ctx, id)
	if apiclient.IsNotFound(err) {
		s.Logger.Debug("Profile not created yet", zap.String("profileID", id))
		return &models.ProfileView{Exists: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.ProfileView{Exists: true, Profile: p}, nil
}

func (s *DefaultProfileService) Services(ctx context.Context, profileID string) ([]models.ServiceOffering, error) {
	items, err := s.API.ListServices(ctx, profileID)
	if apiclient.IsNotFound(err) {
		return []models.ServiceOffering{}, nil
	}
	return items, err
}

func (s *DefaultProfileService) CreateService(ctx context.Context, svc models.ServiceOffering) (*models.ServiceOffering, error) {
	if err := validateOffering(svc.Name, svc.Price, svc.DurationMin); err != nil {
		return nil, err
	}
	return s.API.CreateService(ctx, svc)
}

func (s *DefaultProfileService) UpdateService(ctx context.Context, id string, svc models.ServiceOffering) (*models.ServiceOffering, error) {
	if svc.Price < 0 || svc.DurationMin < 0 {
		return nil, fmt.Errorf("%w: price and duration must not be negative", ErrInvalidService)
	}
	return s.API.UpdateService(ctx, id, svc)
}

func (s *DefaultProfileService) CustomServices(ctx context.Context) ([]models.CustomService, error) {
	return s.API.ListCustomServices(ctx)
}

func (s *DefaultProfileService) CreateCustomService(ctx context.Context, svc models.CustomService) (*models.CustomService, error) {
	if err := validateOffering(svc.Name, svc.Price, svc.DurationMin); err != nil {
		return nil, err
	}
	return s.API.CreateCustomService(ctx, svc)
}

func (s *DefaultProfileService) UpdateCustomService(ctx context.Context, id string, svc models.CustomService) (*models.CustomService, error) {
	if svc.Price < 0 || svc.DurationMin < 0 {
		return nil, fmt.Errorf("%w: price and duration must not be negative", ErrInvalidService)
	}
	return s.API.UpdateCustomService(ctx, id, svc)
}

func validateOffering(name string, price float64, duration int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidService)
	}
	if duration <= 0 {
		return fmt.Errorf("%w: duration_minutes must be positive", ErrInvalidService)
	}
	return nil
}
