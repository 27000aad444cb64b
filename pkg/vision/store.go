package vision

import "sync"

// Store is the synchronization boundary between the fast capture loop and
// the classifier worker. It holds the single latest frame and the latest
// published emotion state.
//
// All operations are short constant-time critical sections: values are
// copied in on write and copied out on read, and the lock is never held
// across detection, classification, or I/O. Readers therefore never
// observe a torn value and writers never block on a slow reader.
type Store struct {
	mu sync.Mutex

	frame    Frame
	hasFrame bool

	state    State
	hasState bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// PublishFrame overwrites the stored latest frame with a copy of f.
func (s *Store) PublishFrame(f Frame) {
	c := f.Clone()
	s.mu.Lock()
	s.frame = c
	s.hasFrame = true
	s.mu.Unlock()
}

// Frame returns a copy of the latest frame, or false if none has been
// published yet.
func (s *Store) Frame() (Frame, bool) {
	s.mu.Lock()
	f, ok := s.frame, s.hasFrame
	s.mu.Unlock()
	if !ok {
		return Frame{}, false
	}
	return f.Clone(), true
}

// PublishState overwrites the stored emotion state with a copy of st.
func (s *Store) PublishState(st State) {
	c := st.Clone()
	s.mu.Lock()
	s.state = c
	s.hasState = true
	s.mu.Unlock()
}

// State returns a copy of the latest published emotion state, or false if
// the worker has not published yet.
func (s *Store) State() (State, bool) {
	s.mu.Lock()
	st, ok := s.state, s.hasState
	s.mu.Unlock()
	if !ok {
		return State{}, false
	}
	return st.Clone(), true
}
