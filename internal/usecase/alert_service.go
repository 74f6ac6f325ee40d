package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/platform/logging"
)

const (
	// AlertTeamAll subscribes to every team's matches.
	AlertTeamAll = "ALL"

	webhookURLPrefix = "https://discord.com/api/webhooks/"

	defaultAlertMinutesBefore = 10
	maxAlertFanout            = 4
)

// WebhookNotifier delivers directly to a Discord webhook, used for the test
// ping and as a local fallback when the backend relay cannot be reached.
type WebhookNotifier interface {
	SendTest(ctx context.Context, webhookURL string) error
	AnnounceMatch(ctx context.Context, webhookURL string, rec match.Record, minutesBefore int) error
}

type AlertService struct {
	gateway  AlertGateway
	notifier WebhookNotifier
	logger   *logging.Logger
}

func NewAlertService(gateway AlertGateway, notifier WebhookNotifier, logger *logging.Logger) *AlertService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AlertService{gateway: gateway, notifier: notifier, logger: logger}
}

// TestWebhook verifies a destination before subscribing. The backend relay is
// tried first; when it is unreachable the ping goes out directly.
func (s *AlertService) TestWebhook(ctx context.Context, sess session.Session, webhookURL string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.TestWebhook")
	defer span.End()

	webhookURL = strings.TrimSpace(webhookURL)
	if err := validateWebhookURL(webhookURL); err != nil {
		return err
	}

	if s.gateway != nil {
		err := s.gateway.TestAlertWebhook(ctx, sess, webhookURL)
		if err == nil {
			return nil
		}
		if s.notifier == nil {
			return err
		}
		s.logger.WarnContext(ctx, "backend alert relay failed, sending test ping directly", "error", err)
	}
	if s.notifier == nil {
		return fmt.Errorf("%w: no alert delivery path is configured", ErrDependencyUnavailable)
	}
	return s.notifier.SendTest(ctx, webhookURL)
}

func (s *AlertService) Subscribe(ctx context.Context, sess session.Session, teamFilter, webhookURL string, minutesBefore int) (AlertSubscription, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.Subscribe")
	defer span.End()

	if s.gateway == nil {
		return AlertSubscription{}, fmt.Errorf("%w: alert gateway is not configured", ErrDependencyUnavailable)
	}

	webhookURL = strings.TrimSpace(webhookURL)
	if err := validateWebhookURL(webhookURL); err != nil {
		return AlertSubscription{}, err
	}

	teamFilter = strings.TrimSpace(teamFilter)
	if teamFilter == "" || strings.EqualFold(teamFilter, AlertTeamAll) {
		teamFilter = AlertTeamAll
	} else {
		code, ok := match.ResolveTeam(teamFilter)
		if !ok {
			return AlertSubscription{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, teamFilter)
		}
		teamFilter = code
	}

	if minutesBefore <= 0 {
		minutesBefore = defaultAlertMinutesBefore
	}

	sub, err := s.gateway.SubscribeAlerts(ctx, sess, teamFilter, webhookURL, minutesBefore)
	if err != nil {
		return AlertSubscription{}, err
	}
	s.logger.InfoContext(ctx, "alert subscription created", "subscription_id", sub.ID, "team_filter", teamFilter, "minutes_before", minutesBefore)
	return sub, nil
}

func (s *AlertService) List(ctx context.Context, sess session.Session) ([]AlertSubscription, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.List")
	defer span.End()

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: alert gateway is not configured", ErrDependencyUnavailable)
	}
	return s.gateway.ListAlertSubscriptions(ctx, sess)
}

func (s *AlertService) Deactivate(ctx context.Context, sess session.Session, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.Deactivate")
	defer span.End()

	if s.gateway == nil {
		return fmt.Errorf("%w: alert gateway is not configured", ErrDependencyUnavailable)
	}
	if id <= 0 {
		return fmt.Errorf("%w: subscription id must be positive", ErrInvalidInput)
	}
	return s.gateway.DeactivateAlertSubscription(ctx, sess, id)
}

func (s *AlertService) Delete(ctx context.Context, sess session.Session, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.Delete")
	defer span.End()

	if s.gateway == nil {
		return fmt.Errorf("%w: alert gateway is not configured", ErrDependencyUnavailable)
	}
	if id <= 0 {
		return fmt.Errorf("%w: subscription id must be positive", ErrInvalidInput)
	}
	return s.gateway.DeleteAlertSubscription(ctx, sess, id)
}

// NotifyUpcoming fans announcements out to every active subscription whose
// team filter matches a record starting within its advance window. Delivery
// errors are collected, not short-circuited.
func (s *AlertService) NotifyUpcoming(ctx context.Context, records []match.Record, subs []AlertSubscription, now time.Time) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AlertService.NotifyUpcoming")
	defer span.End()

	if s.notifier == nil {
		return 0, fmt.Errorf("%w: webhook notifier is not configured", ErrDependencyUnavailable)
	}

	type delivery struct {
		sub AlertSubscription
		rec match.Record
	}
	var deliveries []delivery
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		minutes := sub.MinutesBefore
		if minutes <= 0 {
			minutes = defaultAlertMinutesBefore
		}
		for _, rec := range records {
			if !subscriptionMatches(sub, rec) {
				continue
			}
			lead := rec.MatchDate.Sub(now)
			if lead <= 0 || lead > time.Duration(minutes)*time.Minute {
				continue
			}
			deliveries = append(deliveries, delivery{sub: sub, rec: rec})
		}
	}
	if len(deliveries) == 0 {
		return 0, nil
	}

	p := pool.New().WithMaxGoroutines(maxAlertFanout).WithErrors().WithContext(ctx)
	for _, d := range deliveries {
		d := d
		p.Go(func(ctx context.Context) error {
			minutes := int(d.rec.MatchDate.Sub(now).Minutes())
			if err := s.notifier.AnnounceMatch(ctx, d.sub.WebhookURL, d.rec, minutes); err != nil {
				return fmt.Errorf("announce match=%s subscription=%d: %w", d.rec.ID, d.sub.ID, err)
			}
			return nil
		})
	}
	err := p.Wait()
	return len(deliveries), err
}

func subscriptionMatches(sub AlertSubscription, rec match.Record) bool {
	filter := strings.TrimSpace(sub.TeamFilter)
	if filter == "" || strings.EqualFold(filter, AlertTeamAll) {
		return true
	}
	return rec.TeamA == filter || rec.TeamB == filter
}

func validateWebhookURL(raw string) error {
	if !strings.HasPrefix(raw, webhookURLPrefix) {
		return fmt.Errorf("%w: webhook URL must start with %s", ErrInvalidInput, webhookURLPrefix)
	}
	return nil
}
