package discordhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/junseong2im/Esports/internal/domain/match"
)

func TestValidateWebhookURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "discord webhook", url: "https://discord.com/api/webhooks/123/abc", wantErr: false},
		{name: "leading whitespace", url: "  https://discord.com/api/webhooks/123/abc", wantErr: false},
		{name: "other host", url: "https://example.com/api/webhooks/123/abc", wantErr: true},
		{name: "plain http", url: "http://discord.com/api/webhooks/123/abc", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateWebhookURL(tc.url)
			if tc.wantErr && !errors.Is(err, ErrInvalidWebhookURL) {
				t.Fatalf("ValidateWebhookURL(%q) = %v, want ErrInvalidWebhookURL", tc.url, err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidateWebhookURL(%q) = %v, want nil", tc.url, err)
			}
		})
	}
}

func TestSendRejectsInvalidDestinationWithoutNetwork(t *testing.T) {
	t.Parallel()

	notifier := NewNotifier(time.Second)
	rec := match.Record{
		ID:         "42",
		TeamA:      "T1",
		TeamB:      "Gen.G",
		MatchDate:  time.Date(2026, time.March, 5, 17, 0, 0, 0, time.UTC),
		LeagueName: "LCK",
		Status:     "scheduled",
	}

	err := notifier.AnnounceMatch(context.Background(), "https://evil.example/webhook", rec, 30)
	if !errors.Is(err, ErrInvalidWebhookURL) {
		t.Fatalf("AnnounceMatch() error = %v, want ErrInvalidWebhookURL", err)
	}
}

func TestAnnounceDescription(t *testing.T) {
	t.Parallel()

	rec := match.Record{TeamA: "HLE", TeamB: "KT"}
	got := announceDescription(rec, 15)
	want := "15분 후 경기가 시작됩니다: HLE vs KT"
	if got != want {
		t.Fatalf("announceDescription() = %q, want %q", got, want)
	}
}
