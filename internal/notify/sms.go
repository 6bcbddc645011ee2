package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// SMSSender delivers messages through the SMS provider's form API. It is the
// fallback channel, used when the primary send does not go through.
type SMSSender struct {
	url      string
	user     string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// NewSMSSender constructs the fallback channel sender.
func NewSMSSender(apiURL, user, password string, logger *slog.Logger) *SMSSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMSSender{
		url:      apiURL,
		user:     user,
		password: password,
		client:   newHTTPClient(),
		logger:   logger,
	}
}

// Send posts the message form-encoded, with the phone number as a query
// parameter. Delivery requires a 200 status and a {"result":"OK"} body.
func (s *SMSSender) Send(ctx context.Context, phoneNumber, message string) bool {
	endpoint := s.url + "?phone=" + url.QueryEscape(FormatPhoneNumber(phoneNumber))

	form := url.Values{"message": {message}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.user, s.password)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WarnContext(ctx, "sms send failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.WarnContext(ctx, "sms send rejected", "status", resp.StatusCode)
		return false
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return body.Result == "OK"
}
