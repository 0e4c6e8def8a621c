// internal/service/telegram/sender.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const apiBase = "https://api.telegram.org"

// Sender delivers OTP codes to admins over the Telegram Bot API.
type Sender struct {
	botToken string
	client   *http.Client
	logger   *zap.Logger
}

// NewSender creates a Telegram sender. The HTTP timeout bounds how long
// a login attempt can block on delivery.
func NewSender(botToken string, logger *zap.Logger) *Sender {
	return &Sender{
		botToken: botToken,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// SendOTP sends a human-readable login code message to the given chat.
// Transport failures are logged and reported as false, never as an error:
// the caller decides whether a failed delivery fails the flow.
func (s *Sender) SendOTP(ctx context.Context, chatID, code string, ttl time.Duration) bool {
	text := fmt.Sprintf("Your login code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		s.logger.Error("failed to encode telegram message", zap.Error(err))
		return false
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("failed to build telegram request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("telegram send failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("telegram API rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("chat_id", chatID),
		)
		return false
	}

	return true
}
