package focus

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  Pattern
	}{
		{91, PatternHigh},
		{81, PatternHigh},
		{80, PatternStable},
		{70, PatternStable},
		{61, PatternStable},
		{60, PatternDeclining},
		{45, PatternDeclining},
		{41, PatternDeclining},
		{40, PatternLow},
		{10, PatternLow},
		{0, PatternLow},
		{100, PatternHigh},
	}
	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-5, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{130, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRandomWalkBounded(t *testing.T) {
	w := NewRandomWalk(42, Spread)
	for i := 0; i < 10000; i++ {
		d := w.Perturb()
		if d < -Spread || d >= Spread {
			t.Fatalf("perturbation %d = %v, outside [-%v, %v)", i, d, Spread, Spread)
		}
	}
}

func TestRandomWalkDeterministic(t *testing.T) {
	a := NewRandomWalk(7, Spread)
	b := NewRandomWalk(7, Spread)
	c := NewRandomWalk(8, Spread)

	same := true
	for i := 0; i < 50; i++ {
		da, db, dc := a.Perturb(), b.Perturb(), c.Perturb()
		if da != db {
			t.Fatalf("step %d: equal seeds diverged: %v != %v", i, da, db)
		}
		if da != dc {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical trajectories")
	}
}

func TestRandomWalkDefaultSpread(t *testing.T) {
	w := NewRandomWalk(1, 0)
	if w.spread != Spread {
		t.Errorf("spread = %v, want %v", w.spread, Spread)
	}
}

func TestFixedWraps(t *testing.T) {
	f := NewFixed(1, -2, 3)
	want := []float64{1, -2, 3, 1, -2}
	for i, w := range want {
		if got := f.Perturb(); got != w {
			t.Errorf("step %d = %v, want %v", i, got, w)
		}
	}
	if got := NewFixed().Perturb(); got != 0 {
		t.Errorf("empty Fixed = %v, want 0", got)
	}
}
