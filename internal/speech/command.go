package speech

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iiroan/folio/internal/exec"
	"github.com/iiroan/folio/internal/voice"
)

// CommandSynthesizer speaks by running a local TTS program, espeak-ng or
// macOS say. Text is passed on stdin.
type CommandSynthesizer struct {
	command string
	logger  *log.Logger
	timeout time.Duration
	catalog *voice.Static

	mu       sync.Mutex
	cancel   context.CancelFunc
	gen      uint64
	speaking bool
}

// CommandOption configures a CommandSynthesizer.
type CommandOption func(*CommandSynthesizer)

func WithCommandLogger(l *log.Logger) CommandOption {
	return func(s *CommandSynthesizer) { s.logger = l }
}

// WithTimeout bounds a single utterance.
func WithTimeout(d time.Duration) CommandOption {
	return func(s *CommandSynthesizer) { s.timeout = d }
}

// NewCommandSynthesizer returns a synthesizer running command. Its catalog
// is empty until LoadVoices succeeds.
func NewCommandSynthesizer(command string, opts ...CommandOption) *CommandSynthesizer {
	s := &CommandSynthesizer{
		command: command,
		logger:  log.Default(),
		timeout: 10 * time.Minute,
		catalog: voice.NewStatic(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the voices as a voice.Catalog.
func (s *CommandSynthesizer) Catalog() voice.Catalog { return s.catalog }

func (s *CommandSynthesizer) Voices() []voice.Voice { return s.catalog.Voices() }

func (s *CommandSynthesizer) isSay() bool {
	return strings.HasSuffix(s.command, "say")
}

// LoadVoices asks the engine for its voices and publishes them to the
// catalog.
func (s *CommandSynthesizer) LoadVoices(ctx context.Context) error {
	if err := exec.RequireCommands(s.command); err != nil {
		return err
	}
	args := []string{"--voices"}
	if s.isSay() {
		args = []string{"-v", "?"}
	}
	opts := exec.DefaultOptions()
	opts.Logger = s.logger
	res := exec.Run(ctx, s.command, args, opts)
	if res.Err != nil {
		return fmt.Errorf("listing voices with %s: %w", s.command, res.Err)
	}

	var voices []voice.Voice
	if s.isSay() {
		voices = ParseSayVoices(res.Stdout)
	} else {
		voices = ParseEspeakVoices(res.Stdout)
	}
	s.logger.Debug("voices loaded", "engine", s.command, "count", len(voices))
	s.catalog.Set(voices)
	return nil
}

func (s *CommandSynthesizer) args(u Utterance) []string {
	switch {
	case s.isSay() && u.Voice.Name != "":
		return []string{"-v", u.Voice.Name}
	case s.isSay():
		return nil
	case u.Voice.ID != "":
		return []string{"-v", u.Voice.ID}
	case u.Lang != "":
		base, _, _ := strings.Cut(strings.ToLower(u.Lang), "-")
		return []string{"-v", base}
	}
	return nil
}

// Speak starts the engine in the background and returns immediately.
func (s *CommandSynthesizer) Speak(u Utterance) error {
	if !exec.CheckCommand(s.command) {
		return fmt.Errorf("speech engine %q not found in PATH", s.command)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.speaking = true
	s.mu.Unlock()

	args := s.args(u)
	opts := exec.Options{
		Timeout: s.timeout,
		Stdin:   strings.NewReader(u.Text),
		Logger:  s.logger,
	}

	go func() {
		if u.OnStart != nil {
			u.OnStart()
		}
		res := exec.Run(ctx, s.command, args, opts)

		s.mu.Lock()
		if s.gen == gen {
			s.speaking = false
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()

		switch {
		case res.Err == nil:
			if u.OnEnd != nil {
				u.OnEnd()
			}
		case res.Canceled():
			if u.OnError != nil {
				u.OnError(ErrInterrupted)
			}
		default:
			err := fmt.Errorf("%s: %w: %s", exec.FormatCommand(s.command, args), res.Err,
				strings.TrimSpace(exec.LastNLines(res.Stderr, 3)))
			if u.OnError != nil {
				u.OnError(err)
			}
		}
	}()
	return nil
}

// Cancel kills the running engine, if any.
func (s *CommandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.speaking = false
}

// Resume is a no-op: command engines do not pause.
func (s *CommandSynthesizer) Resume() {}

func (s *CommandSynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

func (s *CommandSynthesizer) Pending() bool { return false }

// ParseEspeakVoices parses the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  vi              --/M      Vietnamese         aav/vi
func ParseEspeakVoices(out string) []voice.Voice {
	var voices []voice.Voice
	for i, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if i == 0 || len(fields) < 4 {
			continue
		}
		lang := fields[1]
		name := fields[3]
		if g := fields[2]; strings.HasSuffix(g, "/M") {
			name += " (male)"
		} else if strings.HasSuffix(g, "/F") {
			name += " (female)"
		}
		voices = append(voices, voice.Voice{ID: lang, Name: name, Lang: lang})
	}
	return voices
}

var sayLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}_[A-Za-z0-9]+)\s+#`)

// ParseSayVoices parses the listing printed by `say -v '?'`:
//
//	Alex                en_US    # Most people recognize me by my voice.
func ParseSayVoices(out string) []voice.Voice {
	var voices []voice.Voice
	for _, line := range strings.Split(out, "\n") {
		m := sayLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		voices = append(voices, voice.Voice{ID: name, Name: name, Lang: strings.ReplaceAll(m[2], "_", "-")})
	}
	return voices
}
