package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/attachments"
	"github.com/tu-usuario/foodflow-api/pkg/config"
)

var (
	_ attachments.ObjectStorage = (*Client)(nil)
	_ admin.PublicURLResolver   = (*Client)(nil)
)

// Client habla con la API REST de buckets del servicio de storage.
// Sin reintentos: una subida repetida dejaría objetos huérfanos que la
// compensación del caso de uso no conoce.
type Client struct {
	http       *retryablehttp.Client
	endpoint   string
	serviceKey string
	bucket     string
}

// NewClient construye el cliente de storage desde la configuración.
func NewClient(cfg config.StorageConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{
		http:       rc,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
	}
}

// Upload escribe el objeto en el path dado (relativo al bucket de adjuntos).
func (c *Client) Upload(ctx context.Context, path, mimeType string, r io.Reader, size int64) error {
	url := fmt.Sprintf("%s/object/%s/%s", c.endpoint, c.bucket, path)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, r)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", mimeType)
	req.ContentLength = size

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload object: storage respondió %d", resp.StatusCode)
	}
	return nil
}

// Remove elimina el objeto. Un 404 no es error: la limpieza de compensación
// debe ser idempotente.
func (c *Client) Remove(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s/object/%s/%s", c.endpoint, c.bucket, path)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build remove request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remove object: storage respondió %d", resp.StatusCode)
	}
	return nil
}

// CreateSignedURL devuelve una URL de descarga con vencimiento.
func (c *Client) CreateSignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	url := fmt.Sprintf("%s/object/sign/%s/%s", c.endpoint, c.bucket, path)
	body, err := json.Marshal(map[string]int{"expiresIn": int(expiresIn.Seconds())})
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build sign request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("sign object: storage respondió %d", resp.StatusCode)
	}

	var out struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode sign response: %w", err)
	}
	return c.endpoint + out.SignedURL, nil
}

// GetPublicURL devuelve la URL pública del objeto (buckets públicos).
func (c *Client) GetPublicURL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.endpoint, c.bucket, path)
}
