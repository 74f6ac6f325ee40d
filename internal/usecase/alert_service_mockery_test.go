package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
	usecasemock "github.com/junseong2im/Esports/internal/mocks/usecase"
	"github.com/junseong2im/Esports/internal/platform/cache"
	"github.com/junseong2im/Esports/internal/platform/logging"
	"github.com/junseong2im/Esports/internal/usecase"
)

func TestAlertService_Subscribe_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := session.Bearer("fan", "tok")
	gateway := usecasemock.NewAlertGateway(t)

	service := usecase.NewAlertService(gateway, nil, logging.NewNop())
	webhook := "https://discord.com/api/webhooks/1/abc"

	gateway.
		On("SubscribeAlerts", mock.Anything, sess, "HLE", webhook, 10).
		Return(usecase.AlertSubscription{ID: 7, TeamFilter: "HLE", WebhookURL: webhook, MinutesBefore: 10, Active: true}, nil).
		Once()

	got, err := service.Subscribe(ctx, sess, "hanwha", webhook, 0)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if got.ID != 7 || got.TeamFilter != "HLE" {
		t.Fatalf("unexpected subscription: %+v", got)
	}
}

func TestAlertService_Deactivate_GatewayFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := session.Bearer("fan", "tok")
	gateway := usecasemock.NewAlertGateway(t)

	service := usecase.NewAlertService(gateway, nil, logging.NewNop())
	backendDown := errors.New("backend down")

	gateway.
		On("DeactivateAlertSubscription", mock.Anything, sess, int64(7)).
		Return(backendDown).
		Once()

	if err := service.Deactivate(ctx, sess, 7); !errors.Is(err, backendDown) {
		t.Fatalf("expected gateway failure to surface, got %v", err)
	}
}

func TestScheduleService_Load_UsesGatewayOnceUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sess := session.Bearer("fan", "tok")
	gateway := usecasemock.NewScheduleGateway(t)

	service := usecase.NewScheduleService(gateway, cache.NewStore(time.Minute), logging.NewNop(), usecase.DefaultScheduleServiceConfig())

	raws := []match.Raw{{
		ID:          float64(42),
		TeamA:       "T1",
		TeamB:       "Gen.G",
		MatchDate:   "2026-03-05T17:00:00",
		LeagueName:  "LCK",
		MatchStatus: "scheduled",
	}}
	gateway.
		On("FetchSchedule", mock.Anything, sess, "", "").
		Return(raws, nil).
		Once()

	for i := 0; i < 2; i++ {
		records, err := service.Load(ctx, sess, "", "")
		if err != nil {
			t.Fatalf("load #%d: %v", i+1, err)
		}
		if len(records) != 1 || records[0].ID != "42" {
			t.Fatalf("unexpected records on load #%d: %+v", i+1, records)
		}
	}
}
