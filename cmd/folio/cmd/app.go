package cmd

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/iiroan/folio/internal/config"
	"github.com/iiroan/folio/internal/i18n"
	"github.com/iiroan/folio/internal/kv"
	"github.com/iiroan/folio/internal/projects"
	"github.com/iiroan/folio/internal/speech"
	"github.com/iiroan/folio/internal/theme"
	"github.com/iiroan/folio/internal/ui"
)

// app holds the services one folio invocation works with. Everything is
// constructed here and passed down; nothing is a package singleton.
type app struct {
	cfg    *config.Config
	logger *log.Logger

	store    kv.Store
	prefs    *theme.Manager
	sheet    *theme.StyleSheet
	palette  *ui.PaletteEffects
	i18n     *i18n.Provider
	projects *projects.State

	synth  *speech.CommandSynthesizer
	speech *speech.Coordinator

	voicesOnce sync.Once
	voicesErr  error

	stopWatch context.CancelFunc
}

// openStore opens the configured backend. Preferences stay usable for the
// session in memory when it cannot be reached.
func openStore(cfg *config.Config, logger *log.Logger) kv.Store {
	store, err := kv.Open(cfg.StoreOptions())
	if err != nil {
		logger.Warn("preferences will not be saved", "backend", cfg.Store.Backend, "error", err)
		return kv.NewMemory()
	}
	if r, ok := store.(*kv.Redis); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			logger.Warn("preferences will not be saved", "backend", cfg.Store.Backend, "error", err)
			return kv.NewMemory()
		}
	}
	return store
}

func newApp(cfg *config.Config, logger *log.Logger) (*app, error) {
	store := openStore(cfg, logger)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		sheet:   theme.NewStyleSheet(),
		palette: ui.NewPaletteEffects(),
	}

	a.prefs = theme.New(store,
		theme.WithLogger(logger),
		theme.WithPrefersDark(lipgloss.HasDarkBackground),
		theme.WithEffects(a.palette),
		theme.WithEffects(a.sheet),
	)
	a.prefs.Init()

	var err error
	a.i18n, err = i18n.New(store, i18n.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.projects = projects.Load(store, projects.WithLogger(logger))

	if cfg.Speech.Command != "" {
		a.synth = speech.NewCommandSynthesizer(cfg.Speech.Command,
			speech.WithCommandLogger(logger),
			speech.WithTimeout(cfg.SpeechTimeout()),
		)
		a.speech = speech.NewCoordinator(a.synth,
			speech.WithLogger(logger),
			speech.WithKeepAlive(cfg.KeepAlive()),
		)
		a.prefs.InitDefaultVoice(a.synth.Catalog(), string(a.i18n.Language()), cfg.Speech.Secondary)
	}

	if f, ok := store.(*kv.File); ok && cfg.Store.Watch {
		a.watch(f)
	}
	return a, nil
}

// watch reloads the preferences when another process writes the file.
func (a *app) watch(f *kv.File) {
	ctx, cancel := context.WithCancel(context.Background())
	if err := f.Watch(ctx, func() {
		a.logger.Debug("preference file changed on disk, reloading", "path", f.Path())
		a.prefs.Reload()
	}); err != nil {
		cancel()
		a.logger.Warn("not watching preference file", "path", f.Path(), "error", err)
		return
	}
	a.stopWatch = cancel
}

// loadVoices asks the speech engine for its voices once per invocation.
// A catalog filled this way also completes the default voice pick.
func (a *app) loadVoices(ctx context.Context) error {
	if a.synth == nil {
		return errNoSpeech()
	}
	a.voicesOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		a.voicesErr = a.synth.LoadVoices(ctx)
	})
	return a.voicesErr
}

// loadVoicesAsync fills the catalog in the background for the launcher.
func (a *app) loadVoicesAsync() {
	if a.synth == nil {
		return
	}
	go func() {
		if err := a.loadVoices(context.Background()); err != nil {
			a.logger.Debug("voice catalog unavailable", "error", err)
		}
	}()
}

// gesture reports a user interaction to the speech gate.
func (a *app) gesture() {
	if a.speech != nil {
		a.speech.NotifyGesture()
	}
}

func (a *app) speechState() string {
	if a.speech == nil {
		return "unavailable"
	}
	return a.speech.State().String()
}

func (a *app) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.speech != nil {
		a.speech.Close()
	}
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("closing preference store", "error", err)
		}
	}
}
