// Package timers pauses every running timer together when the terminal
// loses focus and resumes them when it comes back.
package timers

// Pausable is a timer that can be suspended without losing its state.
type Pausable interface {
	Pause()
	Resume()
}

// Registry is the set of timers currently running. Not safe for
// concurrent use.
type Registry struct {
	items  []Pausable
	paused bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers p. Adding a timer twice is a no-op. A timer added while
// the registry is paused is paused immediately.
func (r *Registry) Add(p Pausable) {
	for _, it := range r.items {
		if it == p {
			return
		}
	}
	r.items = append(r.items, p)
	if r.paused {
		p.Pause()
	}
}

// Remove unregisters p.
func (r *Registry) Remove(p Pausable) {
	for i, it := range r.items {
		if it == p {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// PauseAll pauses every registered timer.
func (r *Registry) PauseAll() {
	if r.paused {
		return
	}
	r.paused = true
	for _, it := range r.items {
		it.Pause()
	}
}

// ResumeAll resumes every registered timer.
func (r *Registry) ResumeAll() {
	if !r.paused {
		return
	}
	r.paused = false
	for _, it := range r.items {
		it.Resume()
	}
}

// Paused reports whether the registry is in the paused state.
func (r *Registry) Paused() bool { return r.paused }

// Len returns the number of registered timers.
func (r *Registry) Len() int { return len(r.items) }
