package storage

import (
	"context"
	"io"
)

// UploadedPhoto identifies a stored image.
type UploadedPhoto struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// StorageService stores the before/after photos attached to posts.
type StorageService interface {
	UploadPhoto(ctx context.Context, r io.Reader, filename string) (*UploadedPhoto, error)
	DeletePhoto(ctx context.Context, publicID string) error
}
