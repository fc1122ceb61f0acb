package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers messages through the Telegram Bot API
// sendMessage method over plain HTTP.
type TelegramNotifier struct {
	apiBase string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// NewTelegramNotifier creates a TelegramNotifier with a bounded per-request
// timeout.
func NewTelegramNotifier(token string, timeout time.Duration, logger *zap.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramNotifier{
		apiBase: defaultAPIBase,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// NewTelegramNotifierWithBase overrides the API base URL, for tests.
func NewTelegramNotifierWithBase(base, token string, timeout time.Duration, logger *zap.Logger) *TelegramNotifier {
	n := NewTelegramNotifier(token, timeout, logger)
	n.apiBase = base
	return n
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Send posts a sendMessage call.
func (n *TelegramNotifier) Send(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("encoding sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("reading telegram response: %w", err)
	}

	var parsed sendMessageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("telegram response HTTP %d: %w", resp.StatusCode, err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram error %d: %s", parsed.ErrorCode, parsed.Description)
	}

	n.logger.Debug("telegram message sent", zap.Int64("chat_id", chatID))
	return nil
}
