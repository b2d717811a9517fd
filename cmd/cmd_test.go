package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mindmorph/mindmorph/internal/config"
	"github.com/mindmorph/mindmorph/internal/focus"
	"github.com/mindmorph/mindmorph/internal/quiz"
	"github.com/mindmorph/mindmorph/internal/store"
)

func TestFocusLoopAppliesEventsAndRecords(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	var offset atomic.Int64
	now := func() time.Time { return start.Add(time.Duration(offset.Load())) }

	tr := focus.New(focus.WithPerturber(focus.NewFixed(5)), focus.WithInitialScore(70))
	events := make(chan focusEvent)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		events <- scoreEvent
		events <- clockEvent
		events <- clockEvent
		events <- scoreEvent
		offset.Store(int64(2 * time.Minute))
		cancel()
	}()

	var out bytes.Buffer
	sess, ok := focusLoop(ctx, tr, events, &out, now, zap.NewNop())
	require.True(t, ok)
	assert.Equal(t, 120, sess.DurationSecs)
	assert.Equal(t, 2, sess.Minutes)
	assert.False(t, tr.State().Active)
	assert.InDelta(t, 80.0, tr.State().Score, 0.001)

	text := out.String()
	assert.Contains(t, text, "score  75")
	assert.Contains(t, text, "score  80  stable")
	assert.Contains(t, text, "0:02")
}

func TestScheduleFocusRegistersJobs(t *testing.T) {
	events := make(chan focusEvent, 1)
	s, err := scheduleFocus(events, time.Second, time.Second, time.Minute)
	require.NoError(t, err)
	assert.Len(t, s.Jobs(), 3)
}

func TestPrintStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)
	tr := focus.New(focus.WithPerturber(focus.NewFixed()))
	ctx := context.Background()
	tr.Start(ctx, now.Add(-30*time.Minute))
	tr.Stop(ctx, now)

	results := map[string]store.SubjectResults{
		"math": {Best: store.QuizResult{Percentage: 80}, Last: store.QuizResult{Percentage: 60}, Attempts: 2},
	}

	var out bytes.Buffer
	printStats(&out, tr, results, true, now)
	text := out.String()
	assert.Contains(t, text, "30 min")
	assert.Contains(t, text, "Last 7 days")
	assert.Contains(t, text, now.Format("Mon 02"))
	assert.Contains(t, text, "best  80%")

	out.Reset()
	printStats(&out, tr, nil, false, now)
	assert.NotContains(t, out.String(), "Last 7 days")
	assert.Contains(t, out.String(), "No quizzes completed yet.")
}

func TestPrintBankMarksAnswers(t *testing.T) {
	bank, err := quiz.MustLoadBanks().Get(quiz.SubjectMath)
	require.NoError(t, err)

	var out bytes.Buffer
	printBank(&out, bank, true)
	assert.Contains(t, out.String(), bank.Title)
	assert.Contains(t, out.String(), bank.Questions[0].Prompt)
	assert.Contains(t, out.String(), "✓")

	out.Reset()
	printBank(&out, bank, false)
	assert.NotContains(t, out.String(), "✓")
}

func TestResetCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "mm.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.TimerRepo().SetTimerMinutes(context.Background(), 10))
	require.NoError(t, st.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"reset", "--yes", "--db", dbPath})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Deleted 1 saved entries.")

	st, err = store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.TimerRepo().TimerMinutes(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "cfg.db")

	p, err := resolveDBPath(&cobra.Command{}, &config.Config{DBPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, cfgPath, p)
	assert.DirExists(t, filepath.Join(dir, "sub"))
}
