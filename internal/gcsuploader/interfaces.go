package gcsuploader

import (
	"context"

	"google.golang.org/api/option"

	"github.com/dvloznov/commission-fees/internal/gcs"
)

// GCSStorageService is the concrete implementation of StorageService
// that interacts with Google Cloud Storage.
type GCSStorageService struct {
	opts []option.ClientOption
}

// NewGCSStorageService creates a GCSStorageService. When endpoint is not
// empty the client talks to it without credentials, which is how local
// storage emulators are reached.
func NewGCSStorageService(endpoint string) *GCSStorageService {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
	return &GCSStorageService{opts: opts}
}

// UploadFile uploads a local file to bucketName/objectName.
func (s *GCSStorageService) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	return UploadFile(ctx, bucketName, objectName, filePath, s.opts...)
}

// FetchFromGCS downloads the object named by gcsURI.
func (s *GCSStorageService) FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	return FetchFromGCS(ctx, gcsURI, s.opts...)
}

var _ gcs.StorageService = (*GCSStorageService)(nil)
