package service

import (
	"context"
	"io"
)

// UploadResult describes a stored file.
type UploadResult struct {
	URL        string
	ObjectName string
}

// FileUploadService abstracts where uploaded images end up: the cloud bucket
// in production, the local disk in development.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, objectName string) error
	Close() error
}
