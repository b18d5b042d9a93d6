package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/studio-b12/gowebdav"

	"github.com/arvane/photodex/config"
)

// WebDAVStorage keeps image bytes on a WebDAV share.
type WebDAVStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebDAVStorage creates a WebDAV storage provider rooted at the
// configured remote directory.
func NewWebDAVStorage(cfg *config.Config) (*WebDAVStorage, error) {
	if cfg.StorageWebDAVURL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.StorageWebDAVRoot, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.StorageWebDAVURL, cfg.StorageWebDAVUsername, cfg.StorageWebDAVPassword)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	if rootPath != "" {
		if err := client.MkdirAll(rootPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create webdav root '%s': %w", rootPath, err)
		}
	}

	return &WebDAVStorage{client: client, rootPath: rootPath}, nil
}

func (s *WebDAVStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	remote := path.Join(s.rootPath, fileName)
	if err := s.client.Write(remote, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write webdav file '%s': %w", remote, err)
	}
	return remote, nil
}

func (s *WebDAVStorage) Delete(ctx context.Context, p string) error {
	if err := s.client.Remove(p); err != nil {
		return fmt.Errorf("failed to delete webdav file '%s': %w", p, err)
	}
	return nil
}

func (s *WebDAVStorage) Exists(ctx context.Context, p string) (bool, error) {
	if _, err := s.client.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *WebDAVStorage) Health(ctx context.Context) error {
	probe := s.rootPath
	if probe == "" {
		probe = "/"
	}
	if _, err := s.client.ReadDir(probe); err != nil {
		return fmt.Errorf("webdav unreachable: %w", err)
	}
	return nil
}

func (s *WebDAVStorage) Name() string {
	return "webdav"
}
