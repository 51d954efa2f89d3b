package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ImageStorage uploads product images to a Cloud Storage bucket and serves
// them by public URL.
type ImageStorage struct {
	Client *storage.Client
	Bucket string
}

func NewImageStorage(client *storage.Client, bucket string) *ImageStorage {
	return &ImageStorage{Client: client, Bucket: bucket}
}

// Upload stores one image under products/ with a timestamped object name and
// returns its public URL.
func (s *ImageStorage) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if s.Bucket == "" {
		return "", errors.New("storage bucket is not configured")
	}

	name := strings.ReplaceAll(filename, " ", "_")
	object := fmt.Sprintf("products/%d_%s", time.Now().UnixMilli(), name)

	w := s.Client.Bucket(s.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, object), nil
}

// Delete removes an image by its public URL. A missing object is not an
// error: the image may already be gone.
func (s *ImageStorage) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.Bucket)
	if !strings.HasPrefix(url, prefix) {
		return fmt.Errorf("not a managed image url: %s", url)
	}
	object := strings.TrimPrefix(url, prefix)

	err := s.Client.Bucket(s.Bucket).Object(object).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
