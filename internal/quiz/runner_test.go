package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBank(t *testing.T, subject Subject) *Bank {
	t.Helper()
	banks, err := LoadBanks()
	require.NoError(t, err)
	b, err := banks.Get(subject)
	require.NoError(t, err)
	return b
}

func TestEmbeddedBanksLoad(t *testing.T) {
	banks, err := LoadBanks()
	require.NoError(t, err)
	wantCorrect := map[Subject][]int{
		SubjectMath:       {2, 0, 1, 1, 1},
		SubjectScience:    {0, 2, 2, 1, 0},
		SubjectEnglish:    {1, 3, 0, 0, 1},
		SubjectLifeSkills: {1, 1, 1, 1, 1},
	}
	for _, subj := range Subjects {
		t.Run(string(subj), func(t *testing.T) {
			b, err := banks.Get(subj)
			require.NoError(t, err)
			assert.Equal(t, subj, b.Subject)
			require.Len(t, b.Questions, 5)
			for i, q := range b.Questions {
				assert.Equal(t, i+1, q.ID)
				assert.Equal(t, wantCorrect[subj][i], q.Correct, "question %d", q.ID)
				assert.Len(t, q.Options, 4)
				assert.NotEmpty(t, q.Explanation)
			}
			assert.NotEmpty(t, b.Verdicts.Perfect)
			assert.NotEmpty(t, b.Verdicts.Keep)
		})
	}
}

func TestLoadBankUnknown(t *testing.T) {
	_, err := MustLoadBanks().Get("history")
	assert.Error(t, err)

	var none *Banks
	_, err = none.Get(SubjectMath)
	assert.Error(t, err)

	only := NewBanks(mustBank(t, SubjectMath))
	_, err = only.Get(SubjectMath)
	assert.NoError(t, err)
	_, err = only.Get(SubjectScience)
	assert.Error(t, err)
}

func TestParseBankRejectsInvalid(t *testing.T) {
	schema, err := compileBankSchema()
	require.NoError(t, err)

	tests := []struct {
		name string
		yaml string
	}{
		{"missing questions", `
subject: math
title: T
topic: X
verdicts: {perfect: a, strong: b, good: c, keep: d}
`},
		{"bad difficulty", `
subject: math
title: T
topic: X
verdicts: {perfect: a, strong: b, good: c, keep: d}
questions:
  - {id: 1, prompt: p, options: [a, b], correct: 0, explanation: e, difficulty: Extreme}
`},
		{"correct out of range", `
subject: math
title: T
topic: X
verdicts: {perfect: a, strong: b, good: c, keep: d}
questions:
  - {id: 1, prompt: p, options: [a, b], correct: 2, explanation: e, difficulty: Easy}
`},
		{"not yaml", "subject: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBank(schema, []byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRunnerInitialState(t *testing.T) {
	r := NewRunner(mustBank(t, SubjectMath))
	assert.Equal(t, InProgress, r.Phase())
	p := r.Progress()
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, 0, p.Elapsed)
	assert.Equal(t, -1, p.Selected)
	assert.False(t, r.ExplanationVisible())
}

func TestRunnerAllCorrect(t *testing.T) {
	bank := mustBank(t, SubjectScience)
	r := NewRunner(bank)

	for i, q := range bank.Questions {
		require.True(t, r.Select(q.Correct), "select %d", i)
		assert.True(t, r.ExplanationVisible())
		assert.True(t, r.Progress().Correct)
		require.True(t, r.Advance(), "advance %d", i)
	}

	assert.Equal(t, Complete, r.Phase())
	sum, ok := r.Summary()
	require.True(t, ok)
	assert.Equal(t, 5, sum.Score)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 100, sum.Percentage)
	assert.Equal(t, bank.Verdicts.Perfect, sum.Verdict)
}

func TestRunnerOneWrongCapsPercentage(t *testing.T) {
	bank := mustBank(t, SubjectMath)
	r := NewRunner(bank)

	for i, q := range bank.Questions {
		choice := q.Correct
		if i == 2 {
			choice = (q.Correct + 1) % len(q.Options)
		}
		r.Select(choice)
		r.Advance()
	}
	sum, ok := r.Summary()
	require.True(t, ok)
	assert.Equal(t, 4, sum.Score)
	assert.Equal(t, 80, sum.Percentage)
	assert.Less(t, sum.Percentage, 100)
	assert.Equal(t, bank.Verdicts.Strong, sum.Verdict)
}

func TestRunnerResubmissionIgnored(t *testing.T) {
	bank := mustBank(t, SubjectEnglish)
	r := NewRunner(bank)
	q := r.Current()

	wrong := (q.Correct + 1) % len(q.Options)
	require.True(t, r.Select(wrong))
	before := r.Progress()

	assert.False(t, r.Select(q.Correct))
	assert.Equal(t, before, r.Progress())
	assert.Equal(t, Answered, r.Phase())
}

func TestRunnerRejectsOutOfRange(t *testing.T) {
	r := NewRunner(mustBank(t, SubjectMath))
	assert.False(t, r.Select(-1))
	assert.False(t, r.Select(4))
	assert.Equal(t, InProgress, r.Phase())
}

func TestRunnerAdvanceRequiresAnswer(t *testing.T) {
	r := NewRunner(mustBank(t, SubjectMath))
	assert.False(t, r.Advance())
	assert.Equal(t, 0, r.Progress().Index)
}

func TestRunnerAdvanceClearsSelection(t *testing.T) {
	r := NewRunner(mustBank(t, SubjectMath))
	r.Select(0)
	r.Advance()
	p := r.Progress()
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, -1, p.Selected)
	assert.Equal(t, InProgress, r.Phase())
}

func TestRunnerElapsedIgnoresPhase(t *testing.T) {
	bank := mustBank(t, SubjectLifeSkills)
	r := NewRunner(bank)
	for _, q := range bank.Questions {
		r.TickSecond()
		r.Select(q.Correct)
		r.TickSecond()
		r.Advance()
	}
	sum, _ := r.Summary()
	assert.Equal(t, 10, sum.ElapsedSecs)

	r.TickSecond()
	assert.Equal(t, 11, r.Progress().Elapsed)

	// The summary is a frozen copy.
	again, _ := r.Summary()
	assert.Equal(t, 10, again.ElapsedSecs)
}

func TestRunnerResetMatchesFresh(t *testing.T) {
	bank := mustBank(t, SubjectMath)
	r := NewRunner(bank)
	for _, q := range bank.Questions {
		r.TickSecond()
		r.Select(q.Correct)
		r.Advance()
	}
	require.Equal(t, Complete, r.Phase())

	r.Reset()
	fresh := NewRunner(bank)
	assert.Equal(t, fresh.Phase(), r.Phase())
	assert.Equal(t, fresh.Progress(), r.Progress())
	_, ok := r.Summary()
	assert.False(t, ok)
}

func TestVerdictBands(t *testing.T) {
	v := Verdicts{Perfect: "p", Strong: "s", Good: "g", Keep: "k"}
	tests := []struct {
		score, total int
		want         string
	}{
		{5, 5, "p"},
		{4, 5, "s"},
		{3, 5, "g"},
		{2, 5, "k"},
		{0, 5, "k"},
		{0, 0, "k"},
		{159, 200, "g"}, // 79.5% rounds to 80 but is not strong
		{160, 200, "s"},
		{119, 200, "k"}, // 59.5%
		{120, 200, "g"},
	}
	for _, tt := range tests {
		if got := v.For(tt.score, tt.total); got != tt.want {
			t.Errorf("For(%d, %d) = %q, want %q", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct{ score, total, want int }{
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.score, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}
