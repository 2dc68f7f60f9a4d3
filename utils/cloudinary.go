package utils

import (
	"errors"
	"fmt"

	"beu/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ErrCloudinaryNotConfigured is returned when credentials are missing.
var ErrCloudinaryNotConfigured = errors.New("cloudinary credentials not set in configuration")

// NewCloudinary builds a Cloudinary client from application config.
func NewCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, ErrCloudinaryNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.NewCloudinary: failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
