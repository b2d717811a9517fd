package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/ui/layout"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a focus session without the TUI",
	Long:  "Runs a focus session in the foreground, printing the focus score on every tick. Stops after --duration or on Ctrl+C and records the session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetDuration("duration")

		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, duration)
			defer cancel()
		}

		seed := e.cfg.Focus.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		tr := focus.New(
			focus.WithRepo(e.store.FocusRepo()),
			focus.WithAnalytics(e.store.AnalyticsRepo(), func() string { return "cli" }),
			focus.WithPerturber(focus.NewRandomWalk(seed, e.cfg.Focus.Spread)),
			focus.WithLogger(e.logger.Named("focus")),
		)
		tr.Load(ctx, time.Now())

		events := make(chan focusEvent, 8)
		sched, err := scheduleFocus(events, e.cfg.Focus.ScoreInterval, e.cfg.Focus.ClockInterval, e.cfg.Focus.AutosaveInterval)
		if err != nil {
			return fmt.Errorf("schedule ticks: %w", err)
		}
		sched.StartAsync()
		defer sched.Stop()

		sess, ok := focusLoop(ctx, tr, events, cmd.OutOrStdout(), time.Now, e.logger)
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Session recorded: %s (%d min)\n", layout.FormatClock(sess.DurationSecs), sess.Minutes)
		}
		return nil
	},
}

func init() {
	focusCmd.Flags().Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
}

type focusEvent int

const (
	scoreEvent focusEvent = iota
	clockEvent
	autosaveEvent
)

// scheduleFocus registers one job per tick kind. Jobs only post events;
// the tracker is touched by focusLoop alone.
func scheduleFocus(events chan<- focusEvent, score, clock, autosave time.Duration) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	post := func(ev focusEvent) func() {
		return func() {
			select {
			case events <- ev:
			default:
			}
		}
	}

	if _, err := s.Every(score).WaitForSchedule().Do(post(scoreEvent)); err != nil {
		return nil, err
	}
	if _, err := s.Every(clock).WaitForSchedule().Do(post(clockEvent)); err != nil {
		return nil, err
	}
	if _, err := s.Every(autosave).WaitForSchedule().Do(post(autosaveEvent)); err != nil {
		return nil, err
	}
	return s, nil
}

// focusLoop starts a session, applies events until ctx is done and then
// stops the session.
func focusLoop(ctx context.Context, tr *focus.Tracker, events <-chan focusEvent, w io.Writer, now func() time.Time, logger *zap.Logger) (focus.Session, bool) {
	// Persisting must outlive the cancelled run context.
	saveCtx := context.WithoutCancel(ctx)

	tr.Start(saveCtx, now())
	fmt.Fprintf(w, "Focus session started at %s. Press Ctrl+C to stop.\n", now().Format("15:04"))

	for {
		select {
		case <-ctx.Done():
			return tr.Stop(saveCtx, now())
		case ev := <-events:
			switch ev {
			case scoreEvent:
				score, ok := tr.Tick()
				if !ok {
					continue
				}
				st := tr.State()
				fmt.Fprintf(w, "%s  score %3d  %-9s  %s\n",
					now().Format("15:04:05"), int(score), st.Pattern, layout.FormatClock(st.ClockSecs))
			case clockEvent:
				tr.ClockTick()
			case autosaveEvent:
				if err := tr.Autosave(saveCtx, now()); err != nil {
					logger.Warn("autosave failed", zap.Error(err))
				}
			}
		}
	}
}
