// Package discordhook delivers pre-match alerts straight to a Discord
// webhook, bypassing the schedule backend's own alert relay. It is used by
// the local alert test path and as a fallback when the backend relay is
// unreachable.
package discordhook

import (
	"context"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/junseong2im/Esports/internal/domain/match"
)

const (
	// WebhookURLPrefix is the only accepted destination shape. Anything else
	// is rejected before a byte goes on the wire.
	WebhookURLPrefix = "https://discord.com/api/webhooks/"

	defaultTimeout = 10 * time.Second
	maxAttempts    = 3

	colorBlue  = 3447003
	colorGreen = 5763719
)

var ErrInvalidWebhookURL = crerr.New("webhook URL must start with " + WebhookURLPrefix)

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// ValidateWebhookURL rejects anything that is not a Discord webhook.
func ValidateWebhookURL(raw string) error {
	if !strings.HasPrefix(strings.TrimSpace(raw), WebhookURLPrefix) {
		return ErrInvalidWebhookURL
	}
	return nil
}

type Notifier struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func NewNotifier(timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		client:  &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		timeout: timeout,
	}
}

// SendTest delivers a probe message so users can verify their webhook before
// subscribing.
func (n *Notifier) SendTest(ctx context.Context, webhookURL string) error {
	payload := webhookPayload{
		Embeds: []embed{{
			Title:       "✅ 알림 연결 확인",
			Description: "이 채널로 경기 알림이 전송됩니다.",
			Color:       colorGreen,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}
	return n.send(ctx, webhookURL, payload)
}

// AnnounceMatch posts an upcoming-match embed.
func (n *Notifier) AnnounceMatch(ctx context.Context, webhookURL string, rec match.Record, minutesBefore int) error {
	payload := webhookPayload{
		Embeds: []embed{{
			Title:       "🏆 " + rec.TeamA + " vs " + rec.TeamB,
			Description: announceDescription(rec, minutesBefore),
			Color:       colorBlue,
			Fields: []embedField{
				{Name: "리그", Value: rec.LeagueName, Inline: true},
				{Name: "경기 시간", Value: rec.MatchDate.Format("2006-01-02 15:04") + " UTC", Inline: true},
			},
			Footer:    &embedFooter{Text: "LCK 경기 알림"},
			Timestamp: rec.MatchDate.UTC().Format(time.RFC3339),
		}},
	}
	return n.send(ctx, webhookURL, payload)
}

func announceDescription(rec match.Record, minutesBefore int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(strconv.Itoa(minutesBefore))
	_, _ = buf.WriteString("분 후 경기가 시작됩니다: ")
	_, _ = buf.WriteString(rec.TeamA)
	_, _ = buf.WriteString(" vs ")
	_, _ = buf.WriteString(rec.TeamB)
	return buf.String()
}

func (n *Notifier) send(ctx context.Context, webhookURL string, payload webhookPayload) error {
	if err := ValidateWebhookURL(webhookURL); err != nil {
		return err
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal webhook payload")
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		status, retryAfter, err := n.post(webhookURL, body)
		if err != nil {
			return crerr.Wrap(err, "deliver webhook")
		}

		switch {
		case status == fasthttp.StatusNoContent || status == fasthttp.StatusOK:
			return nil
		case status == fasthttp.StatusTooManyRequests:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfter):
			}
		default:
			return crerr.Newf("webhook delivery rejected status=%d", status)
		}
	}

	return crerr.Newf("webhook delivery rate limited after %d attempts", maxAttempts)
}

func (n *Notifier) post(webhookURL string, body []byte) (status int, retryAfter time.Duration, err error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(webhookURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := n.client.DoTimeout(req, resp, n.timeout); err != nil {
		return 0, 0, err
	}

	retryAfter = time.Second
	if raw := string(resp.Header.Peek(fasthttp.HeaderRetryAfter)); raw != "" {
		if seconds, convErr := strconv.Atoi(raw); convErr == nil && seconds > 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	return resp.StatusCode(), retryAfter, nil
}
