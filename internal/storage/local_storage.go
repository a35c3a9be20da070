package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (ls *LocalStorage) SaveFile(file multipart.File, info FileInfo) (string, error) {
	ext := filepath.Ext(info.Filename)
	if ext == "" {
		ext = ".mp4"
	}

	filename := ls.NewName(ext)
	fullPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filename, nil
}

func (ls *LocalStorage) NewName(ext string) string {
	if ext == "" {
		ext = ".mp4"
	}
	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}

func (ls *LocalStorage) FullPath(name string) string {
	return filepath.Join(ls.basePath, filepath.Clean(name))
}

func (ls *LocalStorage) Size(name string) (int64, error) {
	fi, err := os.Stat(ls.FullPath(name))
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return fi.Size(), nil
}

func (ls *LocalStorage) OpenFile(name string) (io.ReadSeekCloser, error) {
	cleanPath := filepath.Clean(name)
	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("invalid path")
	}

	file, err := os.Open(filepath.Join(ls.basePath, cleanPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DeleteFile removes an artifact. Deleting a name that is already gone is
// a no-op so releases stay idempotent.
func (ls *LocalStorage) DeleteFile(name string) error {
	cleanPath := filepath.Clean(name)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("invalid path")
	}

	if err := os.Remove(filepath.Join(ls.basePath, cleanPath)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
