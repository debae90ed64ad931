package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dentmarket/internal/domain/service"
)

// LocalStorageClient writes uploaded images under a base directory; the API
// serves that directory statically at /uploads.
type LocalStorageClient struct {
	baseDir string
}

func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}

	return &LocalStorageClient{baseDir: baseDir}, nil
}

func (c *LocalStorageClient) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (*service.UploadResult, error) {
	dir := filepath.Join(c.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %v", err)
	}

	name := fmt.Sprintf("%s-%s%s", uuid.New().String(), time.Now().Format("20060102150405"), extensionFor(contentType))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("failed to write file: %v", err)
	}

	objectName := filepath.ToSlash(filepath.Join(folder, name))
	return &service.UploadResult{
		URL:        "/uploads/" + objectName,
		ObjectName: objectName,
	}, nil
}

func (c *LocalStorageClient) DeleteFile(ctx context.Context, objectName string) error {
	objectName = strings.TrimPrefix(objectName, "/")
	if objectName == "" {
		return nil
	}

	// objectName comes from stored image metadata; never let it reach
	// outside the upload directory.
	path := filepath.Join(c.baseDir, filepath.FromSlash(objectName))
	rel, err := filepath.Rel(c.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid object name %s", objectName)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %v", objectName, err)
	}

	return nil
}

func (c *LocalStorageClient) Close() error {
	return nil
}
