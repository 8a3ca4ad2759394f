package media

import (
	"context"
	"fmt"
	"mime/multipart"

	"scholarship-backend/internal/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.MediaRef, error) {
	src, err := file.Open()
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Random public ID so re-uploads of the same filename never collide.
	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       folder,
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
	})
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return models.MediaRef{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	resourceType := resp.ResourceType
	if resourceType != "video" {
		resourceType = "image"
	}

	return models.MediaRef{
		URL:          resp.SecureURL,
		PublicID:     resp.PublicID,
		ResourceType: resourceType,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}
