package timers

import "testing"

type fakeTimer struct {
	pauses, resumes int
}

func (f *fakeTimer) Pause()  { f.pauses++ }
func (f *fakeTimer) Resume() { f.resumes++ }

func TestPauseResumeAll(t *testing.T) {
	r := NewRegistry()
	a, b := &fakeTimer{}, &fakeTimer{}
	r.Add(a)
	r.Add(b)
	r.Add(a)

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	r.PauseAll()
	r.PauseAll()
	r.ResumeAll()
	r.ResumeAll()

	for name, ft := range map[string]*fakeTimer{"a": a, "b": b} {
		if ft.pauses != 1 || ft.resumes != 1 {
			t.Errorf("%s: pauses=%d resumes=%d, want 1/1", name, ft.pauses, ft.resumes)
		}
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	a, b := &fakeTimer{}, &fakeTimer{}
	r.Add(a)
	r.Add(b)
	r.Remove(a)

	r.PauseAll()
	if a.pauses != 0 {
		t.Errorf("removed timer paused %d times", a.pauses)
	}
	if b.pauses != 1 {
		t.Errorf("remaining timer paused %d times, want 1", b.pauses)
	}
}

func TestAddWhilePaused(t *testing.T) {
	r := NewRegistry()
	r.PauseAll()

	a := &fakeTimer{}
	r.Add(a)
	if a.pauses != 1 {
		t.Errorf("timer added while paused: pauses=%d, want 1", a.pauses)
	}

	r.ResumeAll()
	if a.resumes != 1 {
		t.Errorf("resumes=%d, want 1", a.resumes)
	}
}
