package main

import (
	"github.com/urfave/cli/v3"
)

func (r *Runner) register() []*cli.Command {
	builders := []func(*Runner) *cli.Command{
		newSignupCommand,
		newLoginCommand,
		newLogoutCommand,
		newScheduleCommand,
		newTeamsCommand,
		newAlertsCommand,
		newDiagnoseCommand,
	}

	commands := make([]*cli.Command, 0, len(builders))
	for _, build := range builders {
		commands = append(commands, build(r))
	}
	return commands
}

func newSignupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account on the schedule backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "login id (letters only)", Required: true},
			&cli.StringFlag{Name: "password", Usage: "password (letters and digits, 6+ chars)", Required: true},
			&cli.StringFlag{Name: "team", Usage: "favorite team (name or code, e.g. T1, hanwha)", Required: true},
		},
		Action: r.SignUp,
	}
}

func newLoginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and persist the credential for later commands",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "login id", Required: true},
			&cli.StringFlag{Name: "password", Usage: "password", Required: true},
		},
		Action: r.Login,
	}
}

func newLogoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Forget the stored credential",
		Action: r.Logout,
	}
}

func newScheduleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Browse and refresh the LCK match schedule",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the current schedule",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "team", Usage: "restrict to one team (name or code, e.g. T1, hanwha)"},
					&cli.StringFlag{Name: "month", Usage: "restrict to one month (YYYY-MM)"},
					&cli.IntFlag{Name: "page", Usage: "page number", Value: 1},
					&cli.StringFlag{Name: "from", Usage: "range start (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "to", Usage: "range end (YYYY-MM-DD)"},
					&cli.BoolFlag{Name: "json", Usage: "emit the page as JSON"},
				},
				Action: r.ScheduleList,
			},
			{
				Name:  "refresh",
				Usage: "Ask the backend to re-crawl, then reload",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "crawl window start (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "end", Usage: "crawl window end (YYYY-MM-DD)"},
					&cli.BoolFlag{Name: "warm", Usage: "pre-load per-team views after the refresh"},
				},
				Action: r.ScheduleRefresh,
			},
		},
	}
}

func newTeamsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "teams",
		Usage:  "List the LCK team codes accepted by --team filters",
		Action: r.Teams,
	}
}

func newAlertsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "alerts",
		Usage: "Manage Discord match alerts",
		Commands: []*cli.Command{
			{
				Name:  "test",
				Usage: "Send a test message to a Discord webhook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "webhook", Usage: "Discord webhook URL", Required: true},
				},
				Action: r.AlertsTest,
			},
			{
				Name:  "subscribe",
				Usage: "Get notified shortly before matches start",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "webhook", Usage: "Discord webhook URL", Required: true},
					&cli.StringFlag{Name: "team", Usage: "team to follow (empty means all teams)"},
					&cli.IntFlag{Name: "minutes", Usage: "lead time before the match", Value: 10},
				},
				Action: r.AlertsSubscribe,
			},
			{
				Name:  "list",
				Usage: "Show your alert subscriptions",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "emit subscriptions as JSON"},
				},
				Action: r.AlertsList,
			},
			{
				Name:  "deactivate",
				Usage: "Pause a subscription without deleting it",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Usage: "subscription id", Required: true},
				},
				Action: r.AlertsDeactivate,
			},
			{
				Name:  "delete",
				Usage: "Delete a subscription",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Usage: "subscription id", Required: true},
				},
				Action: r.AlertsDelete,
			},
		},
	}
}

func newDiagnoseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "diagnose",
		Usage:  "Check whether the schedule backend is reachable and has data",
		Action: r.Diagnose,
	}
}
