package speech

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iiroan/folio/internal/voice"
)

// DefaultKeepAlive is how often a long utterance is nudged so engines that
// stall after a while keep going.
const DefaultKeepAlive = 5 * time.Second

// SpeakOptions tunes a single Speak call.
type SpeakOptions struct {
	VoiceID string
	Lang    string
	OnEnd   func()
}

type request struct {
	text string
	opts SpeakOptions
}

// Coordinator owns the speech engine. All methods are safe for concurrent
// use; callbacks run outside its lock.
type Coordinator struct {
	synth     Synthesizer
	logger    *log.Logger
	keepAlive time.Duration

	mu       sync.Mutex
	armed    bool
	queued   *request
	session  uint64
	current  uint64
	speaking bool
	ticker   *time.Ticker
	stopTick chan struct{}
	closed   bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithKeepAlive sets the keep-alive interval.
func WithKeepAlive(d time.Duration) Option {
	return func(c *Coordinator) { c.keepAlive = d }
}

// NewCoordinator returns a coordinator that holds requests back until
// NotifyGesture is called.
func NewCoordinator(synth Synthesizer, opts ...Option) *Coordinator {
	c := &Coordinator{
		synth:     synth,
		logger:    log.Default(),
		keepAlive: DefaultKeepAlive,
		armed:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voices returns the engine's voice catalog.
func (c *Coordinator) Voices() []voice.Voice {
	return c.synth.Voices()
}

// Speak starts speaking text, canceling whatever is playing. Before the
// first gesture the request is queued instead; only the first queued
// request is kept.
func (c *Coordinator) Speak(text string, opts SpeakOptions) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.armed {
		if c.queued == nil {
			c.queued = &request{text: text, opts: opts}
			c.logger.Debug("speech queued until user interaction")
		} else {
			c.logger.Debug("speech dropped, a request is already queued")
		}
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.start(text, opts)
}

// NotifyGesture reports a user interaction. The first call plays the queued
// request, if any; later calls do nothing.
func (c *Coordinator) NotifyGesture() {
	c.mu.Lock()
	if !c.armed {
		c.mu.Unlock()
		return
	}
	c.armed = false
	q := c.queued
	c.queued = nil
	c.mu.Unlock()

	if q != nil {
		c.start(q.text, q.opts)
	}
	c.synth.Resume()
}

// Armed reports whether the coordinator is still waiting for a gesture.
func (c *Coordinator) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

func (c *Coordinator) start(text string, opts SpeakOptions) {
	if strings.TrimSpace(text) == "" {
		if opts.OnEnd != nil {
			opts.OnEnd()
		}
		return
	}

	c.mu.Lock()
	c.session++
	id := c.session
	c.current = id
	c.speaking = false
	c.stopKeepAliveLocked()
	c.mu.Unlock()

	// Callbacks of the canceled utterance now carry a stale id.
	c.synth.Cancel()

	// Engines may report both an error and the end of one utterance.
	onEnd := func() {}
	if opts.OnEnd != nil {
		onEnd = sync.OnceFunc(opts.OnEnd)
	}

	u := Utterance{
		Text:    text,
		Voice:   c.resolveVoice(opts),
		Lang:    voice.Locale(opts.Lang),
		OnStart: func() { c.handleStart(id) },
		OnEnd:   func() { c.handleEnd(id, nil, onEnd) },
		OnError: func(err error) { c.handleEnd(id, err, onEnd) },
	}
	c.logger.Debug("speaking", "voice", u.Voice.Name, "lang", u.Lang, "chars", len(text))
	if err := c.synth.Speak(u); err != nil {
		c.handleEnd(id, err, onEnd)
	}
}

func (c *Coordinator) resolveVoice(opts SpeakOptions) voice.Voice {
	voices := c.synth.Voices()
	if opts.VoiceID != "" {
		if v, ok := voice.Find(voices, opts.VoiceID); ok {
			return v
		}
		c.logger.Debug("selected voice not available, falling back", "voice", opts.VoiceID)
	}
	if v, ok := voice.Fallback(voices, opts.Lang); ok {
		return v
	}
	return voice.Voice{}
}

func (c *Coordinator) handleStart(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return
	}
	c.speaking = true
	c.startKeepAliveLocked()
}

// handleEnd closes session id. A replaced utterance still tells its caller
// it ended but leaves the newer session alone.
func (c *Coordinator) handleEnd(id uint64, err error, onEnd func()) {
	c.mu.Lock()
	if id != c.current {
		c.mu.Unlock()
		onEnd()
		return
	}
	c.current = 0
	c.speaking = false
	c.stopKeepAliveLocked()
	c.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, ErrNotAllowed):
		c.logger.Warn("speech blocked until the user interacts")
	case errors.Is(err, ErrInterrupted):
		c.logger.Debug("speech interrupted")
	default:
		c.logger.Error("speech failed", "error", err)
	}

	onEnd()
}

func (c *Coordinator) startKeepAliveLocked() {
	if c.keepAlive <= 0 || c.ticker != nil {
		return
	}
	c.ticker = time.NewTicker(c.keepAlive)
	c.stopTick = make(chan struct{})
	go c.nudge(c.ticker, c.stopTick)
}

func (c *Coordinator) stopKeepAliveLocked() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.stopTick)
	c.ticker = nil
	c.stopTick = nil
}

func (c *Coordinator) nudge(t *time.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if c.synth.Speaking() && !c.synth.Pending() {
				c.synth.Resume()
			}
		}
	}
}

// Cancel stops playback and drops a queued request. The engine reports the
// interruption through the active utterance's callbacks.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.queued = nil
	c.speaking = false
	c.stopKeepAliveLocked()
	c.mu.Unlock()

	c.synth.Cancel()
}

// IsSpeaking reports whether an utterance has started and not yet ended.
func (c *Coordinator) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speaking
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.speaking:
		return Speaking
	case c.armed && c.queued != nil:
		return Queued
	default:
		return Idle
	}
}

// Close cancels playback; later Speak calls are ignored.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Cancel()
}
