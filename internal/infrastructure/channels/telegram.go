package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"freightops/internal/config"
	"freightops/internal/domain/notify"
)

// TelegramAdapter sends text messages through the Telegram Bot API.
// The recipient address is the chat ID.
type TelegramAdapter struct {
	baseURL  string
	botToken string
	client   *http.Client
}

func NewTelegramAdapter(cfg config.TelegramConfig) *TelegramAdapter {
	return &TelegramAdapter{
		baseURL:  cfg.APIBaseURL,
		botToken: cfg.BotToken,
		client:   &http.Client{Timeout: defaultSendTimeout},
	}
}

var _ notify.Adapter = (*TelegramAdapter)(nil)

func (a *TelegramAdapter) Name() string {
	return notify.ChannelTelegram
}

func (a *TelegramAdapter) Send(ctx context.Context, address, text string) error {
	payload := map[string]any{
		"chat_id": address,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", a.baseURL, a.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram api status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
