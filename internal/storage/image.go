package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const jpgExtension = ".jpg"

// ImageStore keeps profile images on the filesystem, one folder per username.
// Replacing an image overwrites the previous file for that user.
type ImageStore struct {
	baseDir string
	logger  *slog.Logger
}

func NewImageStore(baseDir string, logger *slog.Logger) *ImageStore {
	return &ImageStore{baseDir: baseDir, logger: logger}
}

func (s *ImageStore) path(username string) string {
	return filepath.Join(s.baseDir, username, username+jpgExtension)
}

// Save writes the image for username, creating the user folder on first use.
func (s *ImageStore) Save(username string, data io.Reader) error {
	userFolder := filepath.Join(s.baseDir, username)
	if _, err := os.Stat(userFolder); os.IsNotExist(err) {
		if err := os.MkdirAll(userFolder, 0o755); err != nil {
			return fmt.Errorf("creating user folder: %w", err)
		}
		s.logger.Info("created directory", "path", userFolder)
	}

	target := s.path(username)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing previous image: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("writing image file: %w", err)
	}

	s.logger.Info("saved profile image", "username", username, "path", target)
	return nil
}

// Open returns the stored image for username; the caller closes it.
func (s *ImageStore) Open(username string) (io.ReadCloser, error) {
	return os.Open(s.path(username))
}
