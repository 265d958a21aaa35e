package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/config"
	"github.com/iiroan/folio/internal/theme"
	"github.com/iiroan/folio/internal/ui"
)

var (
	verbose      bool
	quiet        bool
	noColor      bool
	dense        bool
	cfgFile      string
	storeBackend string
	logger       *log.Logger
	cfg          *config.Config
	svc          *app
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio preferences and read-aloud from the terminal",
	Long: `folio manages the portfolio's shared preferences (color mode, accent,
effects, wallpaper, voice and language) and reads text aloud with the
platform speech engine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		switch cmd.Name() {
		case "version", "help", "init":
			return nil
		}

		path := configPath()
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			logger.Warn("could not load config, using defaults", "path", path, "error", err)
			cfg = config.DefaultConfig()
		}
		if storeBackend != "" {
			cfg.Store.Backend = storeBackend
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}

		svc, err = newApp(cfg, logger)
		if err != nil {
			return err
		}
		applyUISettings()
		setupLogger()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if svc != nil {
			svc.Close()
			svc = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRootTUI()
		}
		return cmd.Help()
	},
}

func launcherItems() []ui.MenuItem {
	t := svc.i18n.T
	return []ui.MenuItem{
		{ID: "settings", TitleText: t("sidebar.nav.settings"), Details: t("settingsPage.tooltipText")},
		{ID: "speak", TitleText: t("projectPostPopup.readAloud"), Details: t("projectPostPopup.voiceReader")},
		{ID: "voices", TitleText: t("settings.aiVoiceSelect"), Details: "List the voices of the speech engine"},
		{ID: "projects", TitleText: t("sidebar.nav.projects"), Details: "Browse the project catalog with the saved filters"},
		{ID: "lang", TitleText: svc.i18n.LanguageName(), Details: "Switch the interface language"},
		{ID: "exit", TitleText: "Exit", Details: "Close folio"},
	}
}

func launcherStatus() []ui.StatusLine {
	p := svc.prefs.Snapshot()
	voiceID := p.VoiceID
	if voiceID == "" {
		voiceID = "default"
	}
	return []ui.StatusLine{
		{Label: "Mode", Value: string(p.Mode)},
		{Label: "Accent", Value: p.Accent()},
		{Label: "Voice", Value: voiceID},
		{Label: "Language", Value: string(svc.i18n.Language())},
		{Label: "Speech", Value: svc.speechState()},
	}
}

func runRootTUI() error {
	svc.loadVoicesAsync()
	var last string
	for {
		choice, err := ui.RunMenuWithOptions("FOLIO", svc.i18n.T("settingsPage.tooltipTitle"), launcherItems(),
			ui.WithInitialSelectionID(last),
			ui.WithStatus(launcherStatus),
			ui.WithKeyHook(svc.gesture),
		)
		if err != nil {
			return runRootFallback()
		}

		if choice == ui.MenuActionQuit || choice == "exit" || choice == "" {
			return nil
		}
		last = choice

		if err := runRootChoice(choice); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}

		if err := waitForEnter("Press enter to return to folio"); err != nil {
			return err
		}
	}
}

func runRootChoice(choice string) error {
	switch choice {
	case "settings":
		return settingsCmd.RunE(settingsCmd, []string{})
	case "speak":
		return runSpeakPrompt()
	case "voices":
		return voicesCmd.RunE(voicesCmd, []string{})
	case "projects":
		return projectsCmd.RunE(projectsCmd, []string{})
	case "lang":
		return runLangPrompt()
	case "exit", ui.MenuActionQuit, ui.MenuActionBack, "":
		return nil
	default:
		return nil
	}
}

func runRootFallback() error {
	ui.StartScreen("FOLIO", svc.i18n.T("settingsPage.tooltipTitle"))
	options := make([]huh.Option[string], 0, len(launcherItems()))
	for _, item := range launcherItems() {
		options = append(options, huh.NewOption(item.TitleText, item.ID))
	}
	var fallbackChoice string
	fallbackErr := huh.NewSelect[string]().
		Title("folio").
		Description("What would you like to do?").
		Options(options...).
		Value(&fallbackChoice).
		WithTheme(ui.HuhTheme()).
		Run()
	if fallbackErr != nil {
		if errors.Is(fallbackErr, huh.ErrUserAborted) {
			return nil
		}
		return fallbackErr
	}
	svc.gesture()
	return runRootChoice(fallbackChoice)
}

func waitForEnter(prompt string) error {
	if !ui.IsInteractiveTerminal() {
		return nil
	}
	fmt.Println()
	fmt.Println(ui.HintStyle().Render(prompt))
	reader := bufio.NewReader(os.Stdin)
	_, err := reader.ReadString('\n')
	return err
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render("Error: "+err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&dense, "dense", false, "Reduce vertical spacing")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/folio/folio.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "Preference store backend: file, sqlite, redis or memory")

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(langCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

func applyUISettings() {
	prefs := ui.Preferences{
		Dense:   dense,
		NoColor: noColor || os.Getenv("NO_COLOR") != "",
	}
	if svc == nil {
		ui.ApplyPreferences(prefs, theme.Dark, theme.DefaultDarkAccent)
		return
	}
	p := svc.prefs.Snapshot()
	ui.ApplyPreferences(prefs, p.Mode, p.Accent())
}

// configPath returns --config or the default location of folio.yaml.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func setupLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	styles := log.DefaultStyles()
	if !noColor && os.Getenv("NO_COLOR") == "" {
		styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
			SetString("DEBUG").
			Foreground(ui.Muted()).
			Bold(true)
		styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
			SetString("INFO").
			Foreground(ui.Primary()).
			Bold(true)
		styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
			SetString("WARN").
			Foreground(ui.Warning()).
			Bold(true)
		styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
			SetString("ERROR").
			Foreground(ui.Error()).
			Bold(true)
	}

	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: verbose,
			TimeFormat:      time.Kitchen,
			Level:           level,
		})
	} else {
		logger.SetLevel(level)
		logger.SetReportTimestamp(verbose)
	}
	logger.SetStyles(styles)
}
