// Package speech serializes text-to-speech playback: one utterance at a time,
// nothing audible before the first user interaction, and stale engine
// callbacks ignored.
package speech

import (
	"errors"

	"github.com/iiroan/folio/internal/voice"
)

var (
	// ErrNotAllowed is reported by engines that refuse to speak before the
	// user has interacted with the application.
	ErrNotAllowed = errors.New("speech not allowed before user interaction")
	// ErrInterrupted is reported when an utterance is canceled.
	ErrInterrupted = errors.New("speech interrupted")
)

// Utterance is one request to the engine. Exactly one of OnEnd or OnError
// is expected per utterance, after OnStart.
type Utterance struct {
	Text  string
	Voice voice.Voice // zero value means the engine default
	Lang  string

	OnStart func()
	OnEnd   func()
	OnError func(error)
}

// Synthesizer is a speech engine.
type Synthesizer interface {
	Voices() []voice.Voice
	Speak(u Utterance) error
	Cancel()
	Resume()
	Speaking() bool
	Pending() bool
}

// State is the coordinator's playback state.
type State int

const (
	Idle State = iota
	Queued
	Speaking
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Speaking:
		return "speaking"
	default:
		return "idle"
	}
}
