package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ObjectStorage uploads a blob to an external store and returns its
// public URL. Used only by the photo pipeline.
type ObjectStorage interface {
	Configured() bool
	Upload(ctx context.Context, path string, body io.Reader, contentType string) (string, error)
}

// supabaseStorage talks to the Supabase Storage HTTP API.
type supabaseStorage struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewSupabaseStorage(baseURL, apiKey, bucket string) ObjectStorage {
	return &supabaseStorage{
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *supabaseStorage) Configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

// Upload implements ObjectStorage.
func (s *supabaseStorage) Upload(ctx context.Context, path string, body io.Reader, contentType string) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to build storage request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("storage upload failed: status %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path), nil
}
