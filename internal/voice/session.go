package voice

import (
	"context"
	"fmt"
)

type State int

const (
	StateIdle State = iota
	StateListening
)

func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "idle"
}

// Session owns at most one live recognition. It is not safe for concurrent use; the
// owner serializes calls, including callbacks it forwards back into the session.
type Session struct {
	recognizer Recognizer
	state      State
	handle     Handle
	generation uint64
}

func NewSession(r Recognizer) *Session {
	return &Session{recognizer: r}
}

// Available reports whether a recognizer is configured.
func (s *Session) Available() bool {
	return s.recognizer != nil
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Listening() bool {
	return s.state == StateListening
}

// Generation identifies the current (or last) recognition. Callbacks carrying an older
// generation belong to a session that has already been torn down.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Current reports whether gen is the live recognition.
func (s *Session) Current(gen uint64) bool {
	return s.state == StateListening && gen == s.generation
}

// Start tears down any live recognition, then starts a new one. bind builds the callbacks
// for the new generation.
func (s *Session) Start(ctx context.Context, bind func(gen uint64) Callbacks) (uint64, error) {
	if s.recognizer == nil {
		return 0, ErrCapabilityUnavailable
	}
	if s.state == StateListening {
		s.Teardown(s.generation)
	}

	s.generation++
	gen := s.generation
	h, err := s.recognizer.Start(ctx, bind(gen))
	if err != nil {
		return gen, fmt.Errorf("starting recognition: %w", err)
	}
	s.handle = h
	s.state = StateListening
	return gen, nil
}

// Teardown returns the session to idle and releases the recognizer handle. It is the single
// exit path for result, error, explicit stop and engine end, and runs at most once per
// generation; it reports whether it did anything.
func (s *Session) Teardown(gen uint64) bool {
	if !s.Current(gen) {
		return false
	}
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
	s.state = StateIdle
	return true
}

// Stop tears down the live recognition, if any.
func (s *Session) Stop() bool {
	return s.Teardown(s.generation)
}
