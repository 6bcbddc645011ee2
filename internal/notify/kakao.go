package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// KakaoSender delivers messages through the KakaoTalk-style JSON API. It is
// the primary channel of the dispatcher.
type KakaoSender struct {
	url      string
	user     string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// NewKakaoSender constructs the primary channel sender.
func NewKakaoSender(url, user, password string, logger *slog.Logger) *KakaoSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &KakaoSender{
		url:      url,
		user:     user,
		password: password,
		client:   newHTTPClient(),
		logger:   logger,
	}
}

// Send posts the message as JSON with basic auth. Only a 200 response counts
// as delivered.
func (s *KakaoSender) Send(ctx context.Context, phoneNumber, message string) bool {
	payload, err := json.Marshal(map[string]string{
		"phone":   FormatPhoneNumber(phoneNumber),
		"message": message,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.user, s.password)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WarnContext(ctx, "kakao send failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.WarnContext(ctx, "kakao send rejected", "status", resp.StatusCode)
		return false
	}
	return true
}
