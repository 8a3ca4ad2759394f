package media

import (
	"context"
	"errors"
	"mime/multipart"

	"scholarship-backend/internal/models"
)

// Disabled stands in when no media host is configured. Uploads fail
// cleanly; deletes are a no-op so record deletion still succeeds.
type Disabled struct{}

func (Disabled) Upload(context.Context, *multipart.FileHeader, string) (models.MediaRef, error) {
	return models.MediaRef{}, errors.New("media storage is not configured")
}

func (Disabled) Delete(context.Context, string, string) error {
	return nil
}
