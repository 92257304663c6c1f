package snapshot

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveSource fetches snapshots from a Google Drive folder, for setups
// where the upstream export drops its output into a shared Drive.
type DriveSource struct {
	srv      *drive.Service
	folderID string
}

func NewDriveSource(ctx context.Context, credentialsJSON, folderPath string) (*DriveSource, error) {
	cfg, err := google.JWTConfigFromJSON([]byte(credentialsJSON), drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}

	s := &DriveSource{srv: srv}
	s.folderID, err = s.findFolder(folderPath)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *DriveSource) findFolder(folderPath string) (string, error) {
	currentID := "root"
	for _, folder := range strings.Split(folderPath, "/") {
		if folder == "" {
			continue
		}
		result, err := s.srv.Files.List().
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false",
				currentID, folder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("find drive folder %s: %w", folder, err)
		}
		if len(result.Files) == 0 {
			return "", fmt.Errorf("drive folder not found: %s", folder)
		}
		currentID = result.Files[0].Id
	}
	return currentID, nil
}

func (s *DriveSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	result, err := s.srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and name='%s' and trashed=false", s.folderID, name)).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list drive snapshot %s: %w", name, err)
	}
	if len(result.Files) == 0 {
		return nil, fmt.Errorf("drive snapshot not found: %s", name)
	}

	resp, err := s.srv.Files.Get(result.Files[0].Id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download drive snapshot %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read drive snapshot %s: %w", name, err)
	}
	return data, nil
}
