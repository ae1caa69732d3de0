// Package email sends HTML notification mail over authenticated SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/config"
)

// Sender is the contract the pipeline depends on. The production
// implementation is Client; tests substitute fakes.
type Sender interface {
	SendAlert(to, city, alertMessage string) error
}

// Client sends mail through a single SMTP account. One message per call,
// no batching, no queueing.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

// NewClient creates an email client from SMTP configuration
func NewClient(cfg *config.SMTPConfig) *Client {
	return &Client{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.Username,
	}
}

// SendAlert sends a weather alert email for a city
func (c *Client) SendAlert(to, city, alertMessage string) error {
	subject := fmt.Sprintf("Weather Alert for %s", city)

	body, err := renderTemplate(alertTemplate, map[string]string{
		"City":    city,
		"Message": alertMessage,
	})
	if err != nil {
		return apperrors.NewTransportError("failed to render alert email", err)
	}

	return c.send(to, subject, body)
}

// SendWelcome sends the post-registration welcome email
func (c *Client) SendWelcome(to, city string) error {
	body, err := renderTemplate(welcomeTemplate, map[string]string{
		"City": city,
	})
	if err != nil {
		return apperrors.NewTransportError("failed to render welcome email", err)
	}

	return c.send(to, "Welcome to the Weather Alert Service", body)
}

// SendTest sends a configuration test email
func (c *Client) SendTest(to, subject string) error {
	body, err := renderTemplate(testTemplate, map[string]string{
		"To":      to,
		"Subject": subject,
		"Time":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return apperrors.NewTransportError("failed to render test email", err)
	}

	return c.send(to, subject, body)
}

// send builds and dials out one message. Authentication and connection
// failures surface as transport errors.
func (c *Client) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := c.dialer.DialAndSend(m); err != nil {
		return apperrors.NewTransportError(fmt.Sprintf("failed to send email to %s", to), err)
	}

	return nil
}

func renderTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
