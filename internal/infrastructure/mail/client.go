package mail

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/pkg/config"
)

var _ admin.Mailer = (*Client)(nil)

// Client envía correo transaccional vía SMTP (bienvenida, reset de contraseña).
type Client struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewClient construye el cliente SMTP desde la configuración.
func NewClient(cfg config.MailConfig) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	return &Client{cfg: cfg, dialer: dialer}
}

// Send envía un correo HTML a un destinatario.
func (c *Client) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)
	msg.SetAddressHeader("From", c.cfg.From, c.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
