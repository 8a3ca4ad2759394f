package media

import (
	"context"
	"mime/multipart"

	"scholarship-backend/internal/models"
)

// Store is the external media host. Upload failures abort the calling
// operation; Delete is best-effort only (callers log and move on, the
// record mutation has already succeeded).
type Store interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.MediaRef, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}
