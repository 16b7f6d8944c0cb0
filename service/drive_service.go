package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxDriveImageBytes caps a single Drive download
const maxDriveImageBytes = 25 << 20

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string, opts ...option.ClientOption) (*DriveService, error) {
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// DownloadImage downloads the content of an image file stored in Drive
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, fmt.Errorf("%w: fileId is required", ErrValidation)
	}

	meta, err := ds.client.Files.Get(fileID).
		Fields("id, name, mimeType, size").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}
	if !strings.HasPrefix(strings.ToLower(meta.MimeType), "image/") {
		return nil, fmt.Errorf("%w: drive file %s is %s", ErrUnsupportedImage, meta.Name, meta.MimeType)
	}

	resp, err := ds.client.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if len(data) > maxDriveImageBytes {
		return nil, fmt.Errorf("%w: drive file %s exceeds %d bytes", ErrUnsupportedImage, meta.Name, maxDriveImageBytes)
	}

	log.Printf("📥 Downloaded %s from Drive (%d bytes)", meta.Name, len(data))
	return data, nil
}
