package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"blog-publishing-be/pkg/asset"
)

// Store talks to an upload API that issues pre-signed targets:
// GET {endpoint}?filename=... then PUT the bytes to the returned uploadUrl.
type Store struct {
	endpoint string
	client   *http.Client
}

// envelope accepts both {"code":"OK"} and the numeric {"code":200} form.
type envelope struct {
	Code    json.RawMessage    `json:"code"`
	Message string             `json:"message"`
	Data    asset.UploadTarget `json:"data"`
}

func NewStore(endpoint string, timeout time.Duration) *Store {
	return &Store{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *Store) RequestUploadTarget(ctx context.Context, name string) (asset.UploadTarget, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return asset.UploadTarget{}, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("filename", name)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return asset.UploadTarget{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return asset.UploadTarget{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return asset.UploadTarget{}, fmt.Errorf("upload api error (status %d): %s", resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return asset.UploadTarget{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.ok() {
		return asset.UploadTarget{}, fmt.Errorf("upload api returned %s: %s", string(env.Code), env.Message)
	}
	if env.Data.UploadURL == "" || env.Data.PublicURL == "" {
		return asset.UploadTarget{}, fmt.Errorf("upload api returned an incomplete target")
	}
	return env.Data, nil
}

func (s *Store) PutBinary(ctx context.Context, uploadURL string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", http.DetectContentType(payload))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("put failed (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func (e envelope) ok() bool {
	if len(e.Code) == 0 {
		return true
	}
	var text string
	if err := json.Unmarshal(e.Code, &text); err == nil {
		return text == "OK"
	}
	var status int
	if err := json.Unmarshal(e.Code, &status); err == nil {
		return status >= 200 && status < 300
	}
	return false
}
