package speech

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/folio/internal/voice"
)

type fakeSynth struct {
	mu       sync.Mutex
	voices   []voice.Voice
	spoken   []Utterance
	cancels  int
	resumes  int
	speaking bool
	pending  bool
	speakErr error
}

func (f *fakeSynth) Voices() []voice.Voice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voices
}

func (f *fakeSynth) Speak(u Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, u)
	return nil
}

func (f *fakeSynth) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	f.speaking = false
}

func (f *fakeSynth) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
}

func (f *fakeSynth) Speaking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speaking
}

func (f *fakeSynth) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *fakeSynth) utterances() []Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Utterance(nil), f.spoken...)
}

func (f *fakeSynth) resumeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumes
}

func (f *fakeSynth) setSpeaking(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speaking = on
}

func newCoordinator(synth Synthesizer, opts ...Option) *Coordinator {
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return NewCoordinator(synth, opts...)
}

func TestGestureGateQueuesOneRequest(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth)
	require.True(t, c.Armed())

	c.Speak("first", SpeakOptions{})
	c.Speak("second", SpeakOptions{})
	assert.Empty(t, synth.utterances(), "nothing is audible before a gesture")
	assert.Equal(t, Queued, c.State())

	c.NotifyGesture()
	spoken := synth.utterances()
	require.Len(t, spoken, 1)
	assert.Equal(t, "first", spoken[0].Text)
	assert.False(t, c.Armed())
	assert.Equal(t, 1, synth.resumeCount())

	c.NotifyGesture()
	assert.Len(t, synth.utterances(), 1, "the gate is one-shot")
	assert.Equal(t, 1, synth.resumeCount())
}

func TestGestureWithoutQueuedRequest(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth)
	c.NotifyGesture()
	assert.Empty(t, synth.utterances())

	c.Speak("hello", SpeakOptions{})
	assert.Len(t, synth.utterances(), 1, "requests after the gesture play directly")
}

func TestNewRequestCancelsActiveAndIgnoresStaleCallbacks(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth)
	c.NotifyGesture()

	var firstEnded, secondEnded int
	c.Speak("one", SpeakOptions{OnEnd: func() { firstEnded++ }})
	first := synth.utterances()[0]
	first.OnStart()
	assert.True(t, c.IsSpeaking())

	c.Speak("two", SpeakOptions{OnEnd: func() { secondEnded++ }})
	assert.Equal(t, 2, synth.cancels, "each start cancels the engine first")
	second := synth.utterances()[1]

	// The engine reports the interruption of the first utterance late.
	first.OnError(ErrInterrupted)
	first.OnEnd()
	assert.Equal(t, 1, firstEnded, "the replaced caller hears that it ended, once")
	assert.Equal(t, 0, secondEnded)

	second.OnStart()
	assert.True(t, c.IsSpeaking())
	assert.Equal(t, Speaking, c.State())

	second.OnEnd()
	second.OnEnd()
	assert.Equal(t, 1, secondEnded)
	assert.False(t, c.IsSpeaking())
	assert.Equal(t, Idle, c.State())
}

func TestLateEndOfReplacedUtteranceKeepsNewSession(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth)
	c.NotifyGesture()

	firstEnded := 0
	c.Speak("one", SpeakOptions{OnEnd: func() { firstEnded++ }})
	first := synth.utterances()[0]
	first.OnStart()

	c.Speak("two", SpeakOptions{})
	second := synth.utterances()[1]
	second.OnStart()

	first.OnEnd()
	assert.Equal(t, 1, firstEnded)
	assert.True(t, c.IsSpeaking())
	assert.Equal(t, Speaking, c.State())
}

func TestBlankTextEndsImmediately(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth)
	c.NotifyGesture()

	ended := false
	c.Speak("   ", SpeakOptions{OnEnd: func() { ended = true }})
	assert.True(t, ended)
	assert.Empty(t, synth.utterances())
}

func TestErrorsEndTheSession(t *testing.T) {
	for _, err := range []error{ErrNotAllowed, ErrInterrupted, errors.New("synthesis-failed")} {
		synth := &fakeSynth{}
		c := newCoordinator(synth)
		c.NotifyGesture()

		ended := 0
		c.Speak("hello", SpeakOptions{OnEnd: func() { ended++ }})
		u := synth.utterances()[0]
		u.OnStart()
		u.OnError(err)

		assert.Equal(t, 1, ended, err.Error())
		assert.False(t, c.IsSpeaking())
	}
}

func TestEngineRefusalEndsTheSession(t *testing.T) {
	synth := &fakeSynth{speakErr: errors.New("engine missing")}
	c := newCoordinator(synth)
	c.NotifyGesture()

	ended := false
	c.Speak("hello", SpeakOptions{OnEnd: func() { ended = true }})
	assert.True(t, ended)
	assert.Equal(t, Idle, c.State())
}

func TestVoiceResolution(t *testing.T) {
	synth := &fakeSynth{voices: []voice.Voice{
		{ID: "Zira", Name: "Zira", Lang: "en-US"},
		{ID: "David", Name: "Microsoft David - English (United States)", Lang: "en-US"},
		{ID: "An", Name: "An", Lang: "vi-VN"},
	}}
	c := newCoordinator(synth)
	c.NotifyGesture()

	c.Speak("xin chào", SpeakOptions{VoiceID: "Zira", Lang: "vi"})
	c.Speak("hello", SpeakOptions{VoiceID: "uninstalled", Lang: "en"})
	c.Speak("xin chào", SpeakOptions{Lang: "vi"})

	spoken := synth.utterances()
	require.Len(t, spoken, 3)
	assert.Equal(t, "Zira", spoken[0].Voice.ID)
	assert.Equal(t, "David", spoken[1].Voice.ID)
	assert.Equal(t, "en-US", spoken[1].Lang)
	assert.Equal(t, "An", spoken[2].Voice.ID)
	assert.Equal(t, "vi-VN", spoken[2].Lang)
}

func TestKeepAliveStopsOnEnd(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth, WithKeepAlive(5*time.Millisecond))
	c.NotifyGesture()
	base := synth.resumeCount()

	c.Speak("a long paragraph", SpeakOptions{})
	u := synth.utterances()[0]
	synth.setSpeaking(true)
	u.OnStart()

	assert.Eventually(t, func() bool { return synth.resumeCount() > base }, time.Second, time.Millisecond)

	u.OnEnd()
	c.mu.Lock()
	assert.Nil(t, c.ticker)
	c.mu.Unlock()

	after := synth.resumeCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, synth.resumeCount())
}

func TestKeepAliveSkipsPausedEngine(t *testing.T) {
	synth := &fakeSynth{pending: true}
	c := newCoordinator(synth, WithKeepAlive(2*time.Millisecond))
	c.NotifyGesture()
	base := synth.resumeCount()

	c.Speak("hello", SpeakOptions{})
	synth.setSpeaking(true)
	synth.utterances()[0].OnStart()
	time.Sleep(20 * time.Millisecond)
	c.Cancel()

	assert.Equal(t, base, synth.resumeCount())
}

func TestCancelIsIdempotentAndClearsQueue(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth, WithKeepAlive(time.Millisecond))

	c.Speak("queued", SpeakOptions{})
	c.Cancel()
	c.Cancel()
	assert.Equal(t, Idle, c.State())

	c.NotifyGesture()
	assert.Empty(t, synth.utterances(), "a canceled request never plays")

	c.Speak("hello", SpeakOptions{})
	synth.utterances()[0].OnStart()
	c.Cancel()
	assert.False(t, c.IsSpeaking())
	c.mu.Lock()
	assert.Nil(t, c.ticker)
	c.mu.Unlock()
}

func TestClosedCoordinatorIgnoresRequests(t *testing.T) {
	synth := &fakeSynth{}
	c := newCoordinator(synth)
	c.NotifyGesture()
	c.Close()

	c.Speak("hello", SpeakOptions{})
	assert.Empty(t, synth.utterances())
}
