// Package storage keeps uploaded catalog images on the local media directory,
// addressed the way an object store would address them: bucket plus a
// generated {year}/{month}/{timestamp}-{random}.{ext} path.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bucket names for catalog images.
const (
	BucketProductImages  = "product-images"
	BucketCategoryImages = "category-images"
)

type MediaStore struct {
	// Root directory served under /media.
	Dir string
}

func NewMediaStore(dir string) *MediaStore { return &MediaStore{Dir: dir} }

// objectPath generates a collision-free storage path for an upload.
func objectPath(originalName string) string {
	now := time.Now().UTC()
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		ext = "bin"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d/%02d/%d-%s.%s", now.Year(), now.Month(), now.UnixMilli(), random, ext)
}

// Save writes the upload under bucket and returns its public URL path.
func (m *MediaStore) Save(bucket, originalName string, data []byte) (string, error) {
	rel := filepath.Join(bucket, filepath.FromSlash(objectPath(originalName)))
	full := filepath.Join(m.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", err
	}
	return "/media/" + filepath.ToSlash(rel), nil
}

// Delete removes a previously saved object by its public URL path.
// Best effort: a missing file is not an error.
func (m *MediaStore) Delete(publicPath string) error {
	rel := strings.TrimPrefix(publicPath, "/media/")
	if rel == publicPath || rel == "" {
		return fmt.Errorf("not a media path: %s", publicPath)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid media path: %s", publicPath)
	}
	err := os.Remove(filepath.Join(m.Dir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
