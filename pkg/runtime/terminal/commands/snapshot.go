package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/de-tools/cloudcull-console/pkg/runtime/terminal/export"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/services/sources"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type SnapshotCmd struct {
	globals  *Globals
	registry sources.Registry
	reporter *export.Reporter
	asJSON   bool
	timeout  time.Duration
	now      func() time.Time
}

func NewSnapshotCmd(globals *Globals, registry sources.Registry, reporter *export.Reporter) *cobra.Command {
	sc := &SnapshotCmd{globals: globals, registry: registry, reporter: reporter, now: time.Now}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch the audit report once and print the dashboard",
		RunE:  sc.run,
	}

	cmd.Flags().BoolVar(&sc.asJSON, "json", false, "Print the view tree as JSON")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", 60*time.Second, "Overall fetch timeout")

	return cmd
}

func (sc *SnapshotCmd) run(cmd *cobra.Command, _ []string) error {
	settings, err := sc.globals.Settings(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := NewLogger(cmd.ErrOrStderr(), settings.Logger.Level)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), sc.timeout)
	defer cancel()

	reports, err := sc.registry.Report(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create report source: %w", err)
	}
	logs, err := sc.registry.Logs(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create log source: %w", err)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " fetching audit report..."
	s.Start()
	snap := collect(ctx, reports, logs, sc.now())
	s.Stop()

	tree := probeBrand(ctx, settings).Render(snap, sc.now())
	if sc.asJSON {
		err = sc.reporter.HandleJSON(tree)
	} else {
		err = sc.reporter.Handle(tree)
	}
	if err != nil {
		return err
	}

	if snap.State == domain.StateFatal {
		return fmt.Errorf("no audit data: %s", snap.Err)
	}
	return nil
}

// collect runs one report and one log fetch through a fresh State.
func collect(ctx context.Context, reports dashboard.ReportSource, logs dashboard.LogSource, now time.Time) dashboard.Snapshot {
	state := dashboard.NewState()

	report, err := reports.FetchReport(ctx)
	state.ApplyReport(dashboard.ReportFetched{Seq: 1, Report: report, Err: err})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("report fetch failed")
	}

	body, err := logs.FetchLogs(ctx)
	ev := dashboard.LogsFetched{Seq: 1, Err: err}
	if err == nil {
		ev.Entries = dashboard.ParseLogBody(body)
	} else {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("log fetch failed")
	}
	state.ApplyLogs(ev)

	return state.Snapshot(now)
}
