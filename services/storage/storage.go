package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage uploads into folder.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, folder: folder}
}

// UploadPhoto uploads an image and returns its public ID and HTTPS URL.
func (s *CloudinaryStorage) UploadPhoto(ctx context.Context, r io.Reader, filename string) (*UploadedPhoto, error) {
	params := uploader.UploadParams{
		Folder:         s.folder,
		ResourceType:   "image",
		UniqueFilename: api.Bool(true),
	}
	if base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)); base != "" && base != "." {
		params.FilenameOverride = base
	}
	result, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload photo: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}
	return &UploadedPhoto{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

// DeletePhoto removes an image by public ID.
func (s *CloudinaryStorage) DeletePhoto(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: "image"}); err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete photo: %w", err)
	}
	return nil
}
