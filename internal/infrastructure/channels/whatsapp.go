// Package channels implements notify.Adapter against the external messaging
// HTTP APIs. Adapters are dumb senders: retries, quiet hours and filtering
// belong to the dispatcher.
package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freightops/internal/config"
	"freightops/internal/domain/notify"
)

const defaultSendTimeout = 10 * time.Second

// WhatsAppAdapter sends text messages through the WhatsApp Cloud API.
type WhatsAppAdapter struct {
	baseURL       string
	phoneNumberID string
	accessToken   string
	client        *http.Client
}

func NewWhatsAppAdapter(cfg config.WhatsAppConfig) *WhatsAppAdapter {
	return &WhatsAppAdapter{
		baseURL:       cfg.APIBaseURL,
		phoneNumberID: cfg.PhoneNumberID,
		accessToken:   cfg.AccessToken,
		client:        &http.Client{Timeout: defaultSendTimeout},
	}
}

var _ notify.Adapter = (*WhatsAppAdapter)(nil)

func (a *WhatsAppAdapter) Name() string {
	return notify.ChannelWhatsApp
}

func (a *WhatsAppAdapter) Send(ctx context.Context, address, text string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                address,
		"type":              "text",
		"text":              map[string]string{"body": text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", a.baseURL, a.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
