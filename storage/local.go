package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes image bytes under a single base directory.
type LocalStorage struct {
	absBasePath string
}

// NewLocalStorage creates a local storage provider rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory '%s': %w", absPath, err)
	}

	return &LocalStorage{absBasePath: absPath}, nil
}

func (s *LocalStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	dstPath, err := s.resolve(fileName)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(dstPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", dstPath, err)
	}
	return dstPath, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	resolved, err := s.resolve(filepath.Base(path))
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file to delete not found: %s", path)
		}
		return fmt.Errorf("failed to delete local file '%s': %w", resolved, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	resolved, err := s.resolve(filepath.Base(path))
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) Health(ctx context.Context) error {
	info, err := os.Stat(s.absBasePath)
	if err != nil {
		return fmt.Errorf("local storage directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local storage path '%s' is not a directory", s.absBasePath)
	}
	return nil
}

func (s *LocalStorage) Name() string {
	return "local"
}

// resolve joins fileName onto the base directory and guards against
// traversal outside it.
func (s *LocalStorage) resolve(fileName string) (string, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return "", fmt.Errorf("invalid file name: %s", fileName)
	}

	full := filepath.Join(s.absBasePath, fileName)
	if !strings.HasPrefix(full, s.absBasePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file path, potential directory traversal: %s", fileName)
	}
	return full, nil
}
