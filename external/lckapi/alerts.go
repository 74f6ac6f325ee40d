package lckapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/usecase"
)

// subscribeRequest mirrors the backend's field names exactly.
type subscribeRequest struct {
	TeamName   string `json:"teamName"`
	WebhookURL string `json:"webhookUrl"`
	AdvanceMin int    `json:"advanceMin"`
}

// TestAlertWebhook asks the backend to deliver a probe message to the webhook.
func (c *Client) TestAlertWebhook(ctx context.Context, sess session.Session, webhookURL string) error {
	body, err := sonic.Marshal(map[string]string{"webhookUrl": webhookURL})
	if err != nil {
		return fmt.Errorf("encode webhook test request: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/api/alerts/discord/test", nil, sess, body); err != nil {
		return fmt.Errorf("test alert webhook: %w", remapClientError(err))
	}
	return nil
}

// SubscribeAlerts registers a webhook for pre-match alerts. teamFilter may be
// a team code or empty for all teams.
func (c *Client) SubscribeAlerts(ctx context.Context, sess session.Session, teamFilter, webhookURL string, minutesBefore int) (usecase.AlertSubscription, error) {
	body, err := sonic.Marshal(subscribeRequest{TeamName: teamFilter, WebhookURL: webhookURL, AdvanceMin: minutesBefore})
	if err != nil {
		return usecase.AlertSubscription{}, fmt.Errorf("encode subscribe request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/alerts/discord/subscribe", nil, sess, body)
	if err != nil {
		return usecase.AlertSubscription{}, fmt.Errorf("subscribe alerts: %w", remapClientError(err))
	}

	var out usecase.AlertSubscription
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return usecase.AlertSubscription{}, fmt.Errorf("decode subscription payload: %w", err)
	}
	return out, nil
}

// ListAlertSubscriptions returns the caller's registrations.
func (c *Client) ListAlertSubscriptions(ctx context.Context, sess session.Session) ([]usecase.AlertSubscription, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/alerts/discord/subscriptions", nil, sess, nil)
	if err != nil {
		return nil, fmt.Errorf("list alert subscriptions: %w", remapClientError(err))
	}

	var out []usecase.AlertSubscription
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode subscriptions payload: %w", err)
	}
	return out, nil
}

// DeactivateAlertSubscription keeps the registration but stops deliveries.
func (c *Client) DeactivateAlertSubscription(ctx context.Context, sess session.Session, id int64) error {
	path := "/api/alerts/discord/subscriptions/" + strconv.FormatInt(id, 10) + "/deactivate"
	if _, err := c.do(ctx, http.MethodPatch, path, nil, sess, nil); err != nil {
		return fmt.Errorf("deactivate alert subscription id=%d: %w", id, remapClientError(err))
	}
	return nil
}

// DeleteAlertSubscription removes the registration entirely.
func (c *Client) DeleteAlertSubscription(ctx context.Context, sess session.Session, id int64) error {
	path := "/api/alerts/discord/subscriptions/" + strconv.FormatInt(id, 10)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, sess, nil); err != nil {
		return fmt.Errorf("delete alert subscription id=%d: %w", id, remapClientError(err))
	}
	return nil
}

// remapClientError folds common upstream rejections into the usecase error
// taxonomy so callers can branch on sentinels instead of status codes.
func remapClientError(err error) error {
	var remote *RemoteError
	if !stderrors.As(err, &remote) {
		return err
	}
	switch remote.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, remote.Message("request rejected"))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, remote.Message("request rejected"))
	default:
		return err
	}
}
