package app

import (
	"github.com/junseong2im/Esports/external/discordhook"
	"github.com/junseong2im/Esports/external/lckapi"
	"github.com/junseong2im/Esports/internal/config"
	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/platform/cache"
	"github.com/junseong2im/Esports/internal/platform/logging"
	"github.com/junseong2im/Esports/internal/platform/resilience"
	"github.com/junseong2im/Esports/internal/usecase"
	"golang.org/x/time/rate"
)

// Services bundles the wired use cases behind one constructor so every
// command shares the same gateway, cache and config.
type Services struct {
	Schedules *usecase.ScheduleService
	Accounts  *usecase.AccountService
	Alerts    *usecase.AlertService
	PageSize  int
}

func NewServices(cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	client := lckapi.NewClient(lckapi.ClientConfig{
		BaseURL:    cfg.GatewayBaseURL,
		Timeout:    cfg.GatewayTimeout,
		MaxRetries: cfg.GatewayMaxRetries,
		RetryDelay: cfg.GatewayRetryDelay,
		RateLimit:  rate.Limit(cfg.GatewayRateLimit),
		RateBurst:  cfg.GatewayRateBurst,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatewayCircuitEnabled,
			FailureThreshold: cfg.GatewayCircuitFailureCount,
			OpenTimeout:      cfg.GatewayCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatewayCircuitHalfOpenMaxReq,
		},
	})

	store := cache.NewStore(cfg.CacheTTL)
	notifier := discordhook.NewNotifier(cfg.WebhookTimeout)

	scheduleSvc := usecase.NewScheduleService(client, store, logger, usecase.ScheduleServiceConfig{
		SettleDelay:  cfg.SettleDelay,
		PollAttempts: cfg.PollAttempts,
		PollDelay:    cfg.PollDelay,
		WarmWorkers:  cfg.WarmWorkers,
		Scope: match.Scope{
			ExcludeLeagueSubstring: cfg.ExcludeLeagueSubstring,
			SeasonYear:             cfg.SeasonYear,
		},
	})

	return &Services{
		Schedules: scheduleSvc,
		Accounts:  usecase.NewAccountService(client, logger),
		Alerts:    usecase.NewAlertService(client, notifier, logger),
		PageSize:  cfg.PageSize,
	}
}
