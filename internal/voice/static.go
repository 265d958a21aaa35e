package voice

import "sync"

// Static is a Catalog whose contents are set explicitly. Backends that
// discover voices in the background fill it with Set once they are known.
type Static struct {
	mu        sync.Mutex
	voices    []Voice
	listeners map[int]func()
	next      int
}

// NewStatic returns a catalog holding voices, which may be empty.
func NewStatic(voices ...Voice) *Static {
	return &Static{voices: voices, listeners: make(map[int]func())}
}

func (s *Static) Voices() []Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Voice, len(s.voices))
	copy(out, s.voices)
	return out
}

// Set replaces the catalog contents and notifies listeners.
func (s *Static) Set(voices []Voice) {
	s.mu.Lock()
	s.voices = append([]Voice(nil), voices...)
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Static) OnChange(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Listeners reports how many change listeners are registered.
func (s *Static) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
