package usecase

import (
	"context"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
)

// ScheduleGateway is the remote schedule backend as the services see it.
// Implementations own transport concerns (retry, rate limiting, breaker);
// the services own the pipeline semantics built on top.
type ScheduleGateway interface {
	FetchSchedule(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error)
	FetchTeamSchedule(ctx context.Context, sess session.Session, team string) ([]match.Raw, error)
	TriggerCrawl(ctx context.Context, sess session.Session, startDate, endDate string) error
	CheckReachable(ctx context.Context) error
}

type AccountGateway interface {
	Signup(ctx context.Context, loginID, password, teamName string) error
	Login(ctx context.Context, loginID, password string) (session.Session, error)
}

// AlertSubscription is one Discord webhook registration on the backend.
// The JSON tags follow the backend's field names (teamName, advanceMin).
type AlertSubscription struct {
	ID            int64  `json:"id"`
	TeamFilter    string `json:"teamName"`
	WebhookURL    string `json:"webhookUrl"`
	MinutesBefore int    `json:"advanceMin"`
	Active        bool   `json:"active"`
}

type AlertGateway interface {
	TestAlertWebhook(ctx context.Context, sess session.Session, webhookURL string) error
	SubscribeAlerts(ctx context.Context, sess session.Session, teamFilter, webhookURL string, minutesBefore int) (AlertSubscription, error)
	ListAlertSubscriptions(ctx context.Context, sess session.Session) ([]AlertSubscription, error)
	DeactivateAlertSubscription(ctx context.Context, sess session.Session, id int64) error
	DeleteAlertSubscription(ctx context.Context, sess session.Session, id int64) error
}
