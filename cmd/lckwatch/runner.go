package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/urfave/cli/v3"

	"github.com/junseong2im/Esports/internal/app"
	"github.com/junseong2im/Esports/internal/domain/match"
	"github.com/junseong2im/Esports/internal/domain/schedule"
	"github.com/junseong2im/Esports/internal/domain/session"
	"github.com/junseong2im/Esports/internal/platform/logging"
	"github.com/junseong2im/Esports/internal/usecase"
)

// Runner holds the wired services and provides a method per command action.
type Runner struct {
	services    *app.Services
	logger      *logging.Logger
	output      io.Writer
	sessionPath string
	pageSize    int
}

type RunnerOpts struct {
	Services    *app.Services
	Logger      *logging.Logger
	Output      io.Writer
	SessionPath string
	PageSize    int
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.SessionPath == "" {
		opts.SessionPath = defaultSessionPath()
	}
	if opts.PageSize < 1 {
		opts.PageSize = schedule.DefaultPageSize
	}

	return &Runner{
		services:    opts.Services,
		logger:      opts.Logger,
		output:      opts.Output,
		sessionPath: opts.SessionPath,
		pageSize:    opts.PageSize,
	}
}

func (r *Runner) session() (session.Session, error) {
	sess := loadSession(r.sessionPath)
	if !sess.Authenticated() {
		return session.None(), fmt.Errorf("not logged in; run `lckwatch login` first")
	}
	return sess, nil
}

func (r *Runner) writeJSON(data any) error {
	raw, err := sonic.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(r.output, string(raw))
	return err
}

func (r *Runner) SignUp(ctx context.Context, cmd *cli.Command) error {
	if err := r.services.Accounts.SignUp(ctx, cmd.String("id"), cmd.String("password"), cmd.String("team")); err != nil {
		return err
	}
	fmt.Fprintln(r.output, "account created, you can log in now")
	return nil
}

func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.services.Accounts.SignIn(ctx, cmd.String("id"), cmd.String("password"))
	if err != nil {
		return err
	}
	if err := saveSession(r.sessionPath, sess); err != nil {
		return err
	}
	fmt.Fprintf(r.output, "logged in as %s\n", sess.LoginID)
	return nil
}

func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := clearSession(r.sessionPath); err != nil {
		return err
	}
	fmt.Fprintln(r.output, "logged out")
	return nil
}

func (r *Runner) ScheduleList(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}

	team := strings.TrimSpace(cmd.String("team"))
	from := strings.TrimSpace(cmd.String("from"))
	to := strings.TrimSpace(cmd.String("to"))

	var records []match.Record
	if team != "" && from == "" && to == "" {
		records, err = r.services.Schedules.LoadTeam(ctx, sess, team)
	} else {
		records, err = r.services.Schedules.Load(ctx, sess, from, to)
	}
	if err != nil {
		return err
	}

	filter := schedule.FilterState{
		Team:   schedule.AllTeams,
		Period: schedule.AllPeriods,
		Page:   int(cmd.Int("page")),
	}
	if team != "" {
		code, ok := match.ResolveTeam(team)
		if !ok {
			return fmt.Errorf("unknown team %q", team)
		}
		filter.Team = code
	}
	if month := strings.TrimSpace(cmd.String("month")); month != "" {
		filter.Period = month
	}

	visible := schedule.VisibleMatches(records, filter)
	page := schedule.Paginate(visible, filter.Page, r.pageSize)

	if cmd.Bool("json") {
		return r.writeJSON(page)
	}

	if len(page.Items) == 0 {
		fmt.Fprintln(r.output, "no matches for this view")
		return nil
	}
	for _, rec := range page.Items {
		fmt.Fprintf(r.output, "%s  %s vs %s  [%s] %s\n",
			rec.MatchDate.Format("2006-01-02 15:04"), rec.TeamA, rec.TeamB, rec.LeagueName, rec.Status)
	}
	fmt.Fprintf(r.output, "page %d/%d", page.Page, page.TotalPages)
	if periods := schedule.AvailablePeriods(records); len(periods) > 0 {
		fmt.Fprintf(r.output, "  months: %s", strings.Join(periods, " "))
	}
	fmt.Fprintln(r.output)
	return nil
}

func (r *Runner) ScheduleRefresh(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}

	records, err := r.services.Schedules.RefreshAndLoad(ctx, sess, cmd.String("start"), cmd.String("end"))
	if err != nil {
		return r.explainScheduleError(ctx, sess, err)
	}
	fmt.Fprintf(r.output, "refreshed: %d matches\n", len(records))

	if cmd.Bool("warm") {
		warmed := r.services.Schedules.WarmTeamSchedules(ctx, sess, nil)
		r.logger.InfoContext(ctx, "team views warmed", "teams", warmed)
	}
	return nil
}

func (r *Runner) Teams(ctx context.Context, cmd *cli.Command) error {
	for _, team := range match.ValidTeams() {
		fmt.Fprintln(r.output, team)
	}
	return nil
}

func (r *Runner) Diagnose(ctx context.Context, cmd *cli.Command) error {
	sess := loadSession(r.sessionPath)
	err := r.services.Schedules.Diagnose(ctx, sess)
	switch {
	case err == nil:
		fmt.Fprintln(r.output, "backend is reachable and has schedule data")
		return nil
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		fmt.Fprintln(r.output, "backend is unreachable; the schedule service looks down")
		return err
	default:
		fmt.Fprintln(r.output, "backend is reachable but returned no usable data; try `lckwatch schedule refresh`")
		return err
	}
}

func (r *Runner) AlertsTest(ctx context.Context, cmd *cli.Command) error {
	sess := loadSession(r.sessionPath)
	if err := r.services.Alerts.TestWebhook(ctx, sess, cmd.String("webhook")); err != nil {
		return err
	}
	fmt.Fprintln(r.output, "test message sent, check your Discord channel")
	return nil
}

func (r *Runner) AlertsSubscribe(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}

	sub, err := r.services.Alerts.Subscribe(ctx, sess, cmd.String("team"), cmd.String("webhook"), int(cmd.Int("minutes")))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "subscribed (id=%d, team=%s, %d minutes before)\n", sub.ID, sub.TeamFilter, sub.MinutesBefore)
	return nil
}

func (r *Runner) AlertsList(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}

	subs, err := r.services.Alerts.List(ctx, sess)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(subs)
	}
	if len(subs) == 0 {
		fmt.Fprintln(r.output, "no subscriptions")
		return nil
	}
	for _, sub := range subs {
		state := "active"
		if !sub.Active {
			state = "inactive"
		}
		fmt.Fprintf(r.output, "%d  team=%s  %dm before  %s\n", sub.ID, sub.TeamFilter, sub.MinutesBefore, state)
	}
	return nil
}

func (r *Runner) AlertsDeactivate(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}
	id := int64(cmd.Int("id"))
	if err := r.services.Alerts.Deactivate(ctx, sess, id); err != nil {
		return err
	}
	fmt.Fprintf(r.output, "subscription %d deactivated\n", id)
	return nil
}

func (r *Runner) AlertsDelete(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.session()
	if err != nil {
		return err
	}
	id := int64(cmd.Int("id"))
	if err := r.services.Alerts.Delete(ctx, sess, id); err != nil {
		return err
	}
	fmt.Fprintf(r.output, "subscription %d deleted\n", id)
	return nil
}

// explainScheduleError runs the reachability check so the user learns whether
// the backend is down or just empty.
func (r *Runner) explainScheduleError(ctx context.Context, sess session.Session, cause error) error {
	if diagErr := r.services.Schedules.Diagnose(ctx, sess); diagErr != nil {
		if errors.Is(diagErr, usecase.ErrDependencyUnavailable) {
			fmt.Fprintln(r.output, "the schedule backend looks down; try again later")
			return cause
		}
	}
	fmt.Fprintln(r.output, "the crawl produced no data for this window")
	return cause
}
