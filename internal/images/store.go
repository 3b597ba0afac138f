// Package images talks to the external image host. The host exposes a
// small JSON API: POST /upload takes the raw image payload and returns
// the public URL, DELETE removes a previously uploaded image.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gabrielwillianfb/ecommerce/domain"
)

const uploadFolder = "products"

// HTTPImageStore implements domain.ImageStore against the image host's
// HTTP API.
type HTTPImageStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPImageStore creates an image store client for the given host.
func NewHTTPImageStore(baseURL string) *HTTPImageStore {
	return &HTTPImageStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadRequest struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload sends the image payload to the host and returns its public URL.
func (s *HTTPImageStore) Upload(ctx context.Context, image string) (string, error) {
	body, err := json.Marshal(uploadRequest{Image: image, Folder: uploadFolder})
	if err != nil {
		return "", fmt.Errorf("failed to marshal upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return out.SecureURL, nil
}

// Delete removes a hosted image by its public URL.
func (s *HTTPImageStore) Delete(ctx context.Context, imageURL string) error {
	target := s.baseURL + "/" + uploadFolder + "?url=" + url.QueryEscape(imageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("image delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("image host returned status %d", resp.StatusCode)
	}
	return nil
}

var _ domain.ImageStore = (*HTTPImageStore)(nil)
