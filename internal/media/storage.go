// Package media stores uploaded perfume images on the local filesystem.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrNotAnImage is returned when uploaded data cannot be decoded as a
// supported image format.
var ErrNotAnImage = errors.New("data is not a supported image")

const perfumeSubdir = "perfumes"

// Storage manages image filesystem operations.
// Thread-safe for concurrent operations.
type Storage struct {
	root string
	mu   sync.RWMutex // Protects file operations
}

// NewStorage creates a Storage rooted at the media directory.
// Images are stored in {root}/perfumes/ and referenced relative to root,
// so a reference appends directly onto the /media URL prefix.
func NewStorage(root string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("media root cannot be empty")
	}

	if err := os.MkdirAll(filepath.Join(root, perfumeSubdir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &Storage{root: root}, nil
}

// SaveImage validates and stores uploaded image data under a generated
// name, returning the reference to persist. The data must decode as JPEG,
// PNG, GIF or WebP; only the header is inspected.
func (s *Storage) SaveImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotAnImage
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}

	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	ref := path.Join(perfumeSubdir, name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.root, perfumeSubdir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return ref, nil
}

// Get retrieves stored image data by reference.
func (s *Storage) Get(ref string) ([]byte, error) {
	fullPath, err := s.Path(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found for %s: %w", ref, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// Exists checks whether a stored reference still resolves to a file.
func (s *Storage) Exists(ref string) bool {
	fullPath, err := s.Path(ref)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err = os.Stat(fullPath)
	return err == nil
}

// Delete removes a stored image. A reference that no longer resolves is
// not an error.
func (s *Storage) Delete(ref string) error {
	fullPath, err := s.Path(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image file: %w", err)
	}

	return nil
}

// Path resolves a reference to its location on disk. References come from
// the database, so anything resolving outside the media root is rejected.
func (s *Storage) Path(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("reference cannot be empty")
	}

	fullPath := filepath.Clean(filepath.Join(s.root, ref))
	if !strings.HasPrefix(fullPath, filepath.Clean(s.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("reference escapes media root")
	}

	return fullPath, nil
}
