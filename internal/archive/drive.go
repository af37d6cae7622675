package archive

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type driveConfig struct {
	CredentialsFile string `json:"credentials_file"`
	FolderID        string `json:"folder_id"`
}

// driveArchiver uploads images into a shared Google Drive folder and returns
// the file's webViewLink.
type driveArchiver struct {
	svc      *drive.Service
	folderID string
}

func init() {
	Register("drive", createDriveArchiver)
}

func createDriveArchiver(args interface{}) (Archiver, error) {
	cfg := &driveConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.CredentialsFile == "" || cfg.FolderID == "" {
		return nil, fmt.Errorf("drive credentials_file/folder_id are required")
	}
	svc, err := drive.NewService(
		context.Background(),
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init drive service: %w", err)
	}
	return &driveArchiver{svc: svc, folderID: cfg.FolderID}, nil
}

func (a *driveArchiver) Archive(ctx context.Context, key, mimeType string, data []byte) (string, error) {
	meta := &drive.File{
		Name:    key,
		Parents: []string{a.folderID},
	}
	created, err := a.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id", "webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}
	return created.WebViewLink, nil
}
