// Package storage keeps uploaded event images on the local filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"events-web-app/internal/apperror"
)

// LocalImageStore writes images under Root with generated names.
type LocalImageStore struct {
	Root string
}

func NewLocalImageStore(root string) (*LocalImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalImageStore{Root: root}, nil
}

// IsImage reports whether data is an image and returns its detected type
func IsImage(data []byte) (*mimetype.MIME, bool) {
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return mtype, true
		}
	}
	return mtype, false
}

// Store saves data as a new file and returns its name relative to Root.
// The extension comes from the detected content, never from filename.
func (s *LocalImageStore) Store(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperror.NewValidationError("field 'image' is required")
	}
	mtype, ok := IsImage(data)
	if !ok {
		return "", apperror.NewValidationError(
			fmt.Sprintf("file '%s' is not an image (%s)", filepath.Base(filename), mtype.String()))
	}

	name := uuid.NewString() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(s.Root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return name, nil
}

// Delete removes a stored image. A missing file is not an error.
func (s *LocalImageStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalImageStore) resolve(name string) (string, error) {
	clean := filepath.Base(filepath.Clean(name))
	if clean != name || clean == "." || clean == ".." {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(s.Root, clean), nil
}
