package cmd

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/draft"
	"github.com/iiroan/folio/internal/theme"
	"github.com/iiroan/folio/internal/ui"
	"github.com/iiroan/folio/internal/voice"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit display, effect and voice preferences",
	Long: `Edit a draft of the preferences and save it in one step. Nothing is
written until Save; Reset drops the draft.`,
	RunE: runSettings,
}

func runSettings(cmd *cobra.Command, args []string) error {
	t := svc.i18n.T
	ed := draft.NewEditor(svc.prefs,
		draft.WithLogger(logger),
		draft.WithSavedDelay(cfg.SavedDelay()),
	)
	defer ed.Close()

	if svc.synth != nil {
		if err := svc.loadVoices(commandContext(cmd)); err != nil {
			logger.Debug("voice list unavailable", "error", err)
		}
	}

	ui.StartScreen(t("settingsPage.badge"), t("settingsPage.tooltipText"))

	for {
		choice, err := ui.RunMenuWithOptions(strings.ToUpper(t("settingsPage.badge")), t("settingsPage.tooltipTitle"), []ui.MenuItem{
			{ID: "interface", TitleText: t("settings.interfaceTitle"), Details: t("settings.mode") + ", " + t("settings.accentColor")},
			{ID: "wallpaper", TitleText: t("settings.wallpaper"), Details: t("settings.gradient") + " / " + t("settings.video")},
			{ID: "features", TitleText: t("settings.featuresTitle"), Details: t("settings.cursorEffect") + ", " + t("settings.soundEffects") + ", " + t("settings.aiVoice")},
			{ID: "save", TitleText: t("settings.saveButton"), Details: "Write the draft to the preference store"},
			{ID: "reset", TitleText: t("settings.resetButton"), Details: "Drop unsaved changes"},
		}, ui.WithBackNavigation(t("settings.back")), ui.WithStatus(func() []ui.StatusLine {
			return draftStatus(ed)
		}), ui.WithKeyHook(svc.gesture))
		if err != nil {
			return err
		}

		switch choice {
		case ui.MenuActionBack, ui.MenuActionQuit:
			if ed.Dirty() {
				logger.Info("discarded unsaved settings")
			}
			return nil
		case "interface":
			err = runInterfaceForm(ed)
		case "wallpaper":
			err = runWallpaperForm(ed)
		case "features":
			err = runFeaturesForm(ed)
		case "reset":
			ed.Discard()
		case "save":
			// Stays open so the saved indicator shows until it times out.
			ed.Commit()
		default:
			return nil
		}
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}
	}
}

func draftStatus(ed *draft.Editor) []ui.StatusLine {
	d := ed.Draft()
	voiceID := d.VoiceID
	if voiceID == "" {
		voiceID = "default"
	}
	lines := []ui.StatusLine{
		{Label: "Mode", Value: string(d.Mode)},
		{Label: "Accent", Value: d.Accent()},
		{Label: "Wallpaper", Value: string(d.Wallpaper.Kind)},
		{Label: "Cursor", Value: onOff(d.CursorEffect)},
		{Label: "Sound", Value: onOff(d.Sound)},
		{Label: "AI voice", Value: onOff(d.AIVoice)},
		{Label: "Voice", Value: voiceID},
	}
	switch {
	case ed.Dirty():
		lines = append(lines, ui.StatusLine{Label: "Draft", Value: "unsaved changes"})
	case ed.Saved():
		lines = append(lines, ui.StatusLine{Label: "Draft", Value: svc.i18n.T("settings.saved")})
	}
	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func runForm(groups ...*huh.Group) error {
	return huh.NewForm(groups...).
		WithTheme(ui.HuhTheme()).
		WithKeyMap(newHuhBackOnQKeyMap()).
		Run()
}

func runInterfaceForm(ed *draft.Editor) error {
	t := svc.i18n.T

	mode := string(ed.Draft().Mode)
	if err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(t("settings.mode")).
			Options(
				huh.NewOption(t("settings.light"), string(theme.Light)),
				huh.NewOption(t("settings.dark"), string(theme.Dark)),
			).
			Value(&mode),
	)); err != nil {
		return err
	}
	ed.SetMode(theme.Mode(mode))

	// The accent picker edits the slot of the mode chosen above.
	accent := ed.Draft().Accent()
	if err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(t("settings.accentColor")).
			Description(t("settings." + mode)).
			Options(accentOptions(accent)...).
			Value(&accent),
	)); err != nil {
		return err
	}
	ed.SetAccent(accent)
	return nil
}

func accentOptions(current string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(theme.AccentColors)+1)
	found := false
	for _, c := range theme.AccentColors {
		if strings.EqualFold(c, current) {
			found = true
		}
		options = append(options, huh.NewOption(ui.Swatch(c), c))
	}
	if !found && current != "" {
		options = append(options, huh.NewOption(ui.Swatch(current)+" (custom)", current))
	}
	return options
}

func runWallpaperForm(ed *draft.Editor) error {
	t := svc.i18n.T
	d := ed.Draft()

	kind := "gradient"
	if d.Wallpaper.Kind == theme.KindVideo {
		kind = "video"
	}
	if err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(t("settings.wallpaper")).
			Options(
				huh.NewOption(t("settings.gradient"), "gradient"),
				huh.NewOption(t("settings.video"), "video"),
			).
			Value(&kind),
	)); err != nil {
		return err
	}

	choices := theme.GradientOptions(d.Mode)
	if kind == "video" {
		choices = theme.VideoOptions()
	}
	selected := d.Wallpaper.Encode()
	if err := runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(t("settings.wallpaper")).
			Options(wallpaperOptions(choices, d.Wallpaper)...).
			Value(&selected),
	)); err != nil {
		return err
	}

	w, err := theme.ParseWallpaper(selected)
	if err != nil {
		return err
	}
	ed.SetWallpaper(w)
	return nil
}

func wallpaperOptions(choices []theme.WallpaperOption, current theme.Wallpaper) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(choices)+1)
	found := false
	for _, c := range choices {
		if c.Wallpaper.Equal(current) {
			found = true
		}
		options = append(options, huh.NewOption(c.Label, c.Wallpaper.Encode()))
	}
	if !found && current.Kind != "" {
		options = append([]huh.Option[string]{huh.NewOption("Current", current.Encode())}, options...)
	}
	return options
}

func runFeaturesForm(ed *draft.Editor) error {
	t := svc.i18n.T
	d := ed.Draft()

	cursor, sound, aiVoice := d.CursorEffect, d.Sound, d.AIVoice
	voiceID := d.VoiceID

	fields := []huh.Field{
		huh.NewConfirm().Title(t("settings.cursorEffect")).Value(&cursor),
		huh.NewConfirm().Title(t("settings.soundEffects")).Value(&sound),
		huh.NewConfirm().Title(t("settings.aiVoice")).Value(&aiVoice),
	}
	if svc.synth != nil {
		fields = append(fields, huh.NewSelect[string]().
			Title(t("settings.aiVoiceSelect")).
			Options(voiceOptions(svc.synth.Voices(), string(svc.i18n.Language()), voiceID)...).
			Value(&voiceID))
	}
	if err := runForm(huh.NewGroup(fields...)); err != nil {
		return err
	}

	ed.SetCursorEffect(cursor)
	ed.SetSound(sound)
	ed.SetAIVoice(aiVoice)
	ed.SetVoice(voiceID)
	return nil
}

// voiceOptions lists the voices for lang. A stored id that is no longer in
// the catalog stays selectable so that saving does not silently change it.
func voiceOptions(voices []voice.Voice, lang string, current string) []huh.Option[string] {
	candidates := voice.ForLanguage(voices, lang)
	options := []huh.Option[string]{huh.NewOption("Default", "")}
	ids := make([]string, 0, len(candidates))
	for _, v := range candidates {
		label := v.Name
		if v.Lang != "" {
			label += " (" + v.Lang + ")"
		}
		options = append(options, huh.NewOption(label, v.ID))
		ids = append(ids, v.ID)
	}
	if current != "" && !slices.Contains(ids, current) {
		options = append(options, huh.NewOption(current+" (unavailable)", current))
	}
	return options
}
