// Package whatsapp sends messages through the self-hosted gateway. A nil
// *Client is a no-op sender, so callers never branch on whether the gateway
// is configured.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"
	"casaora_backend/platform/phone"
)

// Config is the slice of application config the gateway client needs.
type Config interface {
	config.WhatsAppConfig
	config.PhoneConfig
}

type Client struct {
	baseURL string
	auth    string
	region  string
	http    *http.Client
	log     *logger.Logger
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewClient builds a gateway client, or nil when no gateway is configured.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if !cfg.IsWhatsAppEnabled() {
		return nil
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.GetWhatsAppBaseURL(), "/"),
		auth:    basicAuth(cfg.GetWhatsAppUsername(), cfg.GetWhatsAppPassword()),
		region:  cfg.GetDefaultPhoneRegion(),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// SendMessage delivers a text message to a phone number. The number is
// normalized to E.164 digits before hitting the gateway.
func (c *Client) SendMessage(ctx context.Context, phoneNumber string, message string) error {
	if c == nil {
		return nil
	}

	normalized := strings.TrimPrefix(phone.NormalizeE164(phoneNumber, c.region), "+")
	if normalized == "" {
		return fmt.Errorf("whatsapp: empty recipient")
	}

	payload := sendRequest{
		Phone:   normalized,
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/send/message", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("whatsapp message sent", "phone", normalized)
	return nil
}

func basicAuth(username, password string) string {
	if username == "" && password == "" {
		return ""
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return "Basic " + encoded
}
