package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/store"
	"github.com/mindmorph/mindmorph/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus and quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetBool("week")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		now := time.Now()
		tr := loadTracker(ctx, e, now)

		results, err := e.store.QuizRepo().QuizResults(ctx)
		if err != nil {
			return fmt.Errorf("load quiz results: %w", err)
		}

		printStats(cmd.OutOrStdout(), tr, results, week, now)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("week", false, "Include the last seven days")
}

func printStats(w io.Writer, tr *focus.Tracker, results map[string]store.SubjectResults, week bool, now time.Time) {
	st := tr.Stats(now)
	fmt.Fprintln(w, "Focus")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "  %-18s %d min\n", "Today", st.TodayMinutes)
	fmt.Fprintf(w, "  %-18s %d\n", "Sessions today", st.TodaySessions)
	fmt.Fprintf(w, "  %-18s %d min\n", "Average session", st.AverageMinutes)
	fmt.Fprintf(w, "  %-18s %d min\n", "All time", st.TotalMinutes)
	fmt.Fprintf(w, "  %-18s %d\n", "Logged sessions", st.AllTimeSessions)

	if week {
		days := tr.Weekly(now)
		minutes := make([]int, len(days))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Last 7 days")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for i, d := range days {
			minutes[i] = d.Minutes
			fmt.Fprintf(w, "  %-10s %4d min  %2d sessions\n", d.Date.Format("Mon 02"), d.Minutes, d.Sessions)
		}
		fmt.Fprintf(w, "  %s\n", components.Sparkline(minutes))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quizzes")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	if len(results) == 0 {
		fmt.Fprintln(w, "  No quizzes completed yet.")
		return
	}
	subjects := make([]string, 0, len(results))
	for s := range results {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	for _, s := range subjects {
		r := results[s]
		fmt.Fprintf(w, "  %-12s best %3d%%  last %3d%%  %d attempts\n", s, r.Best.Percentage, r.Last.Percentage, r.Attempts)
	}
}

func loadTracker(ctx context.Context, e *env, now time.Time) *focus.Tracker {
	tr := focus.New(focus.WithRepo(e.store.FocusRepo()), focus.WithLogger(e.logger.Named("focus")))
	tr.Load(ctx, now)
	return tr
}
