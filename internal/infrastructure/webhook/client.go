package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/pkg/config"
)

var _ admin.IngestTrigger = (*Client)(nil)

// Client dispara el workflow externo que indexa documentos de la base de
// conocimiento. Un solo intento: si el workflow no responde, el documento
// queda en estado failed y el operador relanza la ingesta a mano.
type Client struct {
	http   *retryablehttp.Client
	url    string
	secret string
}

// NewClient construye el cliente de webhook desde la configuración.
func NewClient(cfg config.KBConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil

	return &Client{http: rc, url: cfg.WebhookURL, secret: cfg.WebhookSecret}
}

// Trigger notifica al workflow externo que hay un documento por indexar.
func (c *Client) Trigger(ctx context.Context, documentID, storagePath string) error {
	body, err := json.Marshal(map[string]string{
		"document_id":  documentID,
		"storage_path": storagePath,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Secret", c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("invocar webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("invocar webhook: respondió %d", resp.StatusCode)
	}
	return nil
}
