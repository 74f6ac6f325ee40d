package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/platform/cache"
	"github.com/junseong2im/Esports/internal/platform/logging"
)

type stubScheduleGateway struct {
	fetchFunc     func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error)
	fetchTeamFunc func(ctx context.Context, sess session.Session, team string) ([]match.Raw, error)
	crawlFunc     func(ctx context.Context, sess session.Session, startDate, endDate string) error
	reachableFunc func(ctx context.Context) error
}

func (g *stubScheduleGateway) FetchSchedule(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
	if g.fetchFunc == nil {
		return nil, nil
	}
	return g.fetchFunc(ctx, sess, from, to)
}

func (g *stubScheduleGateway) FetchTeamSchedule(ctx context.Context, sess session.Session, team string) ([]match.Raw, error) {
	if g.fetchTeamFunc == nil {
		return nil, nil
	}
	return g.fetchTeamFunc(ctx, sess, team)
}

func (g *stubScheduleGateway) TriggerCrawl(ctx context.Context, sess session.Session, startDate, endDate string) error {
	if g.crawlFunc == nil {
		return nil
	}
	return g.crawlFunc(ctx, sess, startDate, endDate)
}

func (g *stubScheduleGateway) CheckReachable(ctx context.Context) error {
	if g.reachableFunc == nil {
		return nil
	}
	return g.reachableFunc(ctx)
}

func newTestScheduleService(gateway ScheduleGateway) *ScheduleService {
	svc := NewScheduleService(gateway, cache.NewStore(time.Minute), logging.NewNop(), ScheduleServiceConfig{})
	svc.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return svc
}

func rawFlat(id float64, teamA, teamB, date string) match.Raw {
	return match.Raw{
		ID:          id,
		TeamA:       teamA,
		TeamB:       teamB,
		MatchDate:   date,
		LeagueName:  "LCK",
		MatchStatus: "scheduled",
	}
}

func TestRefreshAndLoadPollsUntilRowsAppear(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	var crawls atomic.Int32
	gateway := &stubScheduleGateway{
		crawlFunc: func(ctx context.Context, sess session.Session, startDate, endDate string) error {
			crawls.Add(1)
			return nil
		},
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			if fetches.Add(1) < 3 {
				return nil, nil
			}
			return []match.Raw{rawFlat(42, "T1", "Gen.G", "2026-03-05 17:00:00")}, nil
		},
	}

	svc := newTestScheduleService(gateway)
	records, err := svc.RefreshAndLoad(context.Background(), session.Bearer("fan", "tok"), "", "")
	if err != nil {
		t.Fatalf("RefreshAndLoad() error = %v", err)
	}
	if crawls.Load() != 1 {
		t.Fatalf("crawl calls = %d, want 1", crawls.Load())
	}
	if fetches.Load() != 3 {
		t.Fatalf("fetch calls = %d, want 3 (two empty polls then rows)", fetches.Load())
	}
	if len(records) != 1 || records[0].ID != "42" {
		t.Fatalf("records = %+v", records)
	}
}

func TestRefreshAndLoadReportsUnavailableWhenCrawlYieldsNothing(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	gateway := &stubScheduleGateway{
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			fetches.Add(1)
			return []match.Raw{}, nil
		},
	}

	svc := newTestScheduleService(gateway)
	_, err := svc.RefreshAndLoad(context.Background(), session.Bearer("fan", "tok"), "", "")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
	if fetches.Load() != 3 {
		t.Fatalf("fetch calls = %d, want 3 poll attempts", fetches.Load())
	}
}

func TestRefreshAndLoadWrapsCrawlFailure(t *testing.T) {
	t.Parallel()

	gateway := &stubScheduleGateway{
		crawlFunc: func(ctx context.Context, sess session.Session, startDate, endDate string) error {
			return errors.New("backend exploded")
		},
	}

	svc := newTestScheduleService(gateway)
	_, err := svc.RefreshAndLoad(context.Background(), session.Bearer("fan", "tok"), "", "")
	if !errors.Is(err, ErrCrawlFailed) {
		t.Fatalf("error = %v, want ErrCrawlFailed", err)
	}
}

func TestRefreshAndLoadStopsOnCancelledSettle(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	gateway := &stubScheduleGateway{
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			fetches.Add(1)
			return nil, nil
		},
	}

	svc := newTestScheduleService(gateway)
	svc.sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	_, err := svc.RefreshAndLoad(context.Background(), session.Bearer("fan", "tok"), "", "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if fetches.Load() != 0 {
		t.Fatalf("fetch calls = %d, want 0 after cancelled settle", fetches.Load())
	}
}

func TestConcurrentRefreshesCoalesce(t *testing.T) {
	t.Parallel()

	var crawls atomic.Int32
	release := make(chan struct{})
	gateway := &stubScheduleGateway{
		crawlFunc: func(ctx context.Context, sess session.Session, startDate, endDate string) error {
			crawls.Add(1)
			<-release
			return nil
		},
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			return []match.Raw{rawFlat(1, "T1", "KT", "2026-03-07 15:00:00")}, nil
		},
	}

	svc := newTestScheduleService(gateway)

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.RefreshAndLoad(context.Background(), session.Bearer("fan", "tok"), "", "")
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d error = %v", i, err)
		}
	}
	if got := crawls.Load(); got != 1 {
		t.Fatalf("crawl calls = %d, want 1 coalesced crawl", got)
	}
}

func TestLoadServesSecondCallFromCache(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	gateway := &stubScheduleGateway{
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			fetches.Add(1)
			return []match.Raw{rawFlat(7, "HLE", "DK", "2026-03-08 17:00:00")}, nil
		},
	}

	svc := newTestScheduleService(gateway)
	sess := session.Bearer("fan", "tok")

	for i := 0; i < 2; i++ {
		records, err := svc.Load(context.Background(), sess, "", "")
		if err != nil {
			t.Fatalf("Load() #%d error = %v", i+1, err)
		}
		if len(records) != 1 {
			t.Fatalf("Load() #%d records = %+v", i+1, records)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1 (second read cached)", got)
	}
}

func TestLoadTeamResolvesAliases(t *testing.T) {
	t.Parallel()

	var requested string
	gateway := &stubScheduleGateway{
		fetchTeamFunc: func(ctx context.Context, sess session.Session, team string) ([]match.Raw, error) {
			requested = team
			return []match.Raw{rawFlat(9, "HLE", "T1", "2026-03-09 17:00:00")}, nil
		},
	}

	svc := newTestScheduleService(gateway)
	if _, err := svc.LoadTeam(context.Background(), session.Bearer("fan", "tok"), "hanwha"); err != nil {
		t.Fatalf("LoadTeam() error = %v", err)
	}
	if requested != "HLE" {
		t.Fatalf("gateway asked for team %q, want alias resolved to HLE", requested)
	}

	if _, err := svc.LoadTeam(context.Background(), session.Bearer("fan", "tok"), "SKT"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown team error = %v, want ErrInvalidInput", err)
	}
}

func TestRefreshScrubsStaleTeamCaches(t *testing.T) {
	t.Parallel()

	var teamFetches atomic.Int32
	gateway := &stubScheduleGateway{
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			return []match.Raw{rawFlat(1, "T1", "KT", "2026-03-07 15:00:00")}, nil
		},
		fetchTeamFunc: func(ctx context.Context, sess session.Session, team string) ([]match.Raw, error) {
			teamFetches.Add(1)
			return []match.Raw{rawFlat(2, "T1", "DRX", "2026-03-10 17:00:00")}, nil
		},
	}

	svc := newTestScheduleService(gateway)
	sess := session.Bearer("fan", "tok")

	if _, err := svc.LoadTeam(context.Background(), sess, "T1"); err != nil {
		t.Fatalf("LoadTeam() error = %v", err)
	}
	if _, err := svc.RefreshAndLoad(context.Background(), sess, "", ""); err != nil {
		t.Fatalf("RefreshAndLoad() error = %v", err)
	}
	if _, err := svc.LoadTeam(context.Background(), sess, "T1"); err != nil {
		t.Fatalf("LoadTeam() after refresh error = %v", err)
	}
	if got := teamFetches.Load(); got != 2 {
		t.Fatalf("team fetch calls = %d, want 2 (refresh invalidates team view)", got)
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	sess := session.Bearer("fan", "tok")

	down := newTestScheduleService(&stubScheduleGateway{
		reachableFunc: func(ctx context.Context) error { return errors.New("connection refused") },
	})
	if err := down.Diagnose(context.Background(), sess); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("unreachable backend error = %v, want ErrDependencyUnavailable", err)
	}

	empty := newTestScheduleService(&stubScheduleGateway{})
	if err := empty.Diagnose(context.Background(), sess); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("empty backend error = %v, want ErrDataUnavailable", err)
	}

	healthy := newTestScheduleService(&stubScheduleGateway{
		fetchFunc: func(ctx context.Context, sess session.Session, from, to string) ([]match.Raw, error) {
			return []match.Raw{rawFlat(1, "T1", "KT", "2026-03-07 15:00:00")}, nil
		},
	})
	if err := healthy.Diagnose(context.Background(), sess); err != nil {
		t.Fatalf("healthy backend error = %v, want nil", err)
	}
}

func TestWarmTeamSchedulesHydratesCaches(t *testing.T) {
	t.Parallel()

	var fetched sync.Map
	gateway := &stubScheduleGateway{
		fetchTeamFunc: func(ctx context.Context, sess session.Session, team string) ([]match.Raw, error) {
			fetched.Store(team, true)
			return []match.Raw{rawFlat(3, team, "T1", "2026-03-11 17:00:00")}, nil
		},
	}

	svc := newTestScheduleService(gateway)
	sess := session.Bearer("fan", "tok")

	warmed := svc.WarmTeamSchedules(context.Background(), sess, []string{"KT", "DRX", "BRO"})
	if warmed != 3 {
		t.Fatalf("warmed = %d, want 3", warmed)
	}
	for _, team := range []string{"KT", "DRX", "BRO"} {
		if _, ok := fetched.Load(team); !ok {
			t.Fatalf("team %s was never fetched", team)
		}
	}

	// A follow-up read must come from cache.
	fetched = sync.Map{}
	if _, err := svc.LoadTeam(context.Background(), sess, "KT"); err != nil {
		t.Fatalf("LoadTeam() after warm-up error = %v", err)
	}
	if _, ok := fetched.Load("KT"); ok {
		t.Fatal("warm-up did not populate the team cache")
	}
}
