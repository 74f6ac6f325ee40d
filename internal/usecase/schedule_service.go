package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/platform/cache"
	"github.com/junseong2im/Esports/internal/platform/logging"
	"github.com/junseong2im/Esports/internal/platform/resilience"
)

const (
	scheduleCachePrefix  = "schedule:"
	scheduleAllCacheKey  = scheduleCachePrefix + "all"
	scheduleTeamCacheKey = scheduleCachePrefix + "team:"
)

type ScheduleServiceConfig struct {
	// SettleDelay is how long a triggered crawl gets before the first read.
	SettleDelay time.Duration
	// PollAttempts bounds the reads after a crawl; an empty successful
	// response counts as a retryable condition.
	PollAttempts int
	PollDelay    time.Duration
	WarmWorkers  int
	Scope        match.Scope
}

func DefaultScheduleServiceConfig() ScheduleServiceConfig {
	return ScheduleServiceConfig{
		SettleDelay:  4 * time.Second,
		PollAttempts: 3,
		PollDelay:    2500 * time.Millisecond,
		WarmWorkers:  4,
		Scope: match.Scope{
			ExcludeLeagueSubstring: "CL",
		},
	}
}

func normalizeScheduleServiceConfig(cfg ScheduleServiceConfig) ScheduleServiceConfig {
	defaults := DefaultScheduleServiceConfig()
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = defaults.SettleDelay
	}
	if cfg.PollAttempts < 1 {
		cfg.PollAttempts = defaults.PollAttempts
	}
	if cfg.PollDelay <= 0 {
		cfg.PollDelay = defaults.PollDelay
	}
	if cfg.WarmWorkers < 1 {
		cfg.WarmWorkers = defaults.WarmWorkers
	}
	return cfg
}

// ScheduleService owns the crawl-then-fetch pipeline: trigger a backend
// crawl, wait for it to settle, poll until rows appear, then normalize and
// cache the result wholesale.
type ScheduleService struct {
	gateway ScheduleGateway
	store   *cache.Store
	logger  *logging.Logger
	cfg     ScheduleServiceConfig
	flight  resilience.SingleFlight

	// sleep is swapped in tests to avoid real settle/poll waits.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewScheduleService(gateway ScheduleGateway, store *cache.Store, logger *logging.Logger, cfg ScheduleServiceConfig) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{
		gateway: gateway,
		store:   store,
		logger:  logger,
		cfg:     normalizeScheduleServiceConfig(cfg),
		sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Load is the direct read path: cached when possible, one fetch otherwise.
func (s *ScheduleService) Load(ctx context.Context, sess session.Session, from, to string) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Load")
	defer span.End()

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: schedule gateway is not configured", ErrDependencyUnavailable)
	}

	key := scheduleAllCacheKey
	if from != "" || to != "" {
		key = scheduleCachePrefix + "range:" + from + ":" + to
	}

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raws, err := s.gateway.FetchSchedule(ctx, sess, from, to)
		if err != nil {
			return nil, err
		}
		return s.normalizeSlate(ctx, raws), nil
	})
	if err != nil {
		return nil, err
	}
	records, ok := value.([]match.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return records, nil
}

// LoadTeam reads one team's schedule. The team may be a code or a known
// full-name alias.
func (s *ScheduleService) LoadTeam(ctx context.Context, sess session.Session, team string) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.LoadTeam")
	defer span.End()

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: schedule gateway is not configured", ErrDependencyUnavailable)
	}

	code, ok := match.ResolveTeam(team)
	if !ok {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}

	value, err := s.store.GetOrLoad(ctx, scheduleTeamCacheKey+code, func(ctx context.Context) (any, error) {
		raws, err := s.gateway.FetchTeamSchedule(ctx, sess, code)
		if err != nil {
			return nil, err
		}
		return s.normalizeSlate(ctx, raws), nil
	})
	if err != nil {
		return nil, err
	}
	records, ok := value.([]match.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return records, nil
}

// RefreshAndLoad triggers a backend crawl and reads the result: settle
// delay first, then bounded polling where an empty successful response is
// retried. Concurrent refreshes for the same range collapse into one.
func (s *ScheduleService) RefreshAndLoad(ctx context.Context, sess session.Session, startDate, endDate string) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.RefreshAndLoad")
	defer span.End()

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: schedule gateway is not configured", ErrDependencyUnavailable)
	}

	key := "refresh:" + startDate + ":" + endDate
	value, err, shared := s.flight.Do(key, func() (any, error) {
		return s.refreshAndLoad(ctx, sess, startDate, endDate)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "refresh coalesced with in-flight call", "start_date", startDate, "end_date", endDate)
	}
	records, ok := value.([]match.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected refresh payload type %T", value)
	}
	return records, nil
}

func (s *ScheduleService) refreshAndLoad(ctx context.Context, sess session.Session, startDate, endDate string) ([]match.Record, error) {
	if err := s.gateway.TriggerCrawl(ctx, sess, startDate, endDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrawlFailed, err)
	}

	if err := s.sleep(ctx, s.cfg.SettleDelay); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.cfg.PollAttempts; attempt++ {
		raws, err := s.gateway.FetchSchedule(ctx, sess, startDate, endDate)
		switch {
		case err != nil:
			lastErr = err
			s.logger.WarnContext(ctx, "post-crawl fetch failed", "attempt", attempt, "error", err)
		case len(raws) > 0:
			records := s.normalizeSlate(ctx, raws)
			s.store.DeletePrefix(ctx, scheduleCachePrefix)
			s.store.Set(ctx, scheduleAllCacheKey, records)
			return records, nil
		default:
			lastErr = nil
			s.logger.InfoContext(ctx, "crawl has not produced rows yet", "attempt", attempt)
		}

		if attempt == s.cfg.PollAttempts {
			break
		}
		if err := s.sleep(ctx, s.cfg.PollDelay); err != nil {
			return nil, err
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, lastErr)
	}
	return nil, fmt.Errorf("%w: crawl produced no rows after %d polls", ErrDataUnavailable, s.cfg.PollAttempts)
}

// WarmTeamSchedules hydrates per-team caches so a team-filter switch renders
// without a fetch. Failures are logged, not returned; warming is best effort.
func (s *ScheduleService) WarmTeamSchedules(ctx context.Context, sess session.Session, teams []string) int {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.WarmTeamSchedules")
	defer span.End()

	if len(teams) == 0 {
		teams = match.ValidTeams()
	}

	pool, err := ants.NewPool(s.cfg.WarmWorkers)
	if err != nil {
		s.logger.WarnContext(ctx, "warm pool unavailable", "error", err)
		return 0
	}
	defer pool.Release()

	var mu sync.Mutex
	warmed := 0

	var workers sync.WaitGroup
	for _, team := range teams {
		team := team
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if _, err := s.LoadTeam(ctx, sess, team); err != nil {
				s.logger.DebugContext(ctx, "team warm-up skipped", "team", team, "error", err)
				return
			}
			mu.Lock()
			warmed++
			mu.Unlock()
		}); err != nil {
			workers.Done()
			s.logger.WarnContext(ctx, "warm pool rejected task", "team", team, "error", err)
		}
	}
	workers.Wait()

	return warmed
}

// Diagnose separates "backend down" from "backend up but empty". The former
// maps to ErrDependencyUnavailable, the latter to ErrDataUnavailable, and a
// healthy populated backend returns nil.
func (s *ScheduleService) Diagnose(ctx context.Context, sess session.Session) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Diagnose")
	defer span.End()

	if s.gateway == nil {
		return fmt.Errorf("%w: schedule gateway is not configured", ErrDependencyUnavailable)
	}

	if err := s.gateway.CheckReachable(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	raws, err := s.gateway.FetchSchedule(ctx, sess, "", "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(raws) == 0 {
		return fmt.Errorf("%w: backend is reachable but holds no schedule rows", ErrDataUnavailable)
	}
	return nil
}

// normalizeSlate runs the pure pipeline: adapt raw shapes, drop malformed
// rows, scope-filter, dedupe.
func (s *ScheduleService) normalizeSlate(ctx context.Context, raws []match.Raw) []match.Record {
	records, dropped := match.NormalizeAll(raws)
	if dropped > 0 {
		s.logger.WarnContext(ctx, "dropped malformed schedule rows", "dropped", dropped, "total", len(raws))
	}
	records = match.ScopeFilter(records, s.cfg.Scope)
	return match.Dedupe(records)
}

// InvalidateAll drops every cached schedule view.
func (s *ScheduleService) InvalidateAll(ctx context.Context) {
	s.store.DeletePrefix(ctx, scheduleCachePrefix)
}
