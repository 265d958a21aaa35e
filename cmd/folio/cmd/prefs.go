package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/i18n"
	"github.com/iiroan/folio/internal/projects"
	"github.com/iiroan/folio/internal/theme"
	"github.com/iiroan/folio/internal/ui"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Read and write stored preferences",
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every preference key with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := svc.prefRows()
		if err != nil {
			return err
		}
		width := 0
		for _, r := range rows {
			width = max(width, len(r.key))
		}
		for _, r := range rows {
			value := r.value
			if !r.stored {
				value += " " + ui.HintStyle().Render("(default)")
			}
			fmt.Println(ui.KeyValue(r.key, value, width))
		}
		return nil
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of one preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := svc.prefValue(args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set KEY=VALUE...",
	Short: "Write one or more preferences",
	Long: `Write preferences through the same setters the settings form uses.
Every pair is validated before anything is written; preference keys in one
call are applied as a single change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseKeyValuePairs(args)
		if err != nil {
			return err
		}
		if err := svc.setPrefs(values); err != nil {
			return err
		}
		fmt.Println(ui.SuccessStyle().Render("Updated: " + formatKeyValuePairs(values)))
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsListCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

// prefKeys lists every storage key folio owns, in display order.
func prefKeys() []string {
	keys := append([]string{}, theme.Keys()...)
	return append(keys, i18n.KeyLanguage, projects.KeyViewMode, projects.KeyGroups, projects.KeyStages)
}

type prefRow struct {
	key    string
	value  string
	stored bool
}

func (a *app) prefRows() ([]prefRow, error) {
	keys := prefKeys()
	rows := make([]prefRow, 0, len(keys))
	for _, key := range keys {
		value, err := a.prefValue(key)
		if err != nil {
			return nil, err
		}
		_, stored, err := a.store.Get(key)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		rows = append(rows, prefRow{key: key, value: value, stored: stored})
	}
	return rows, nil
}

// prefValue returns the value the services hold for key, which is the
// stored value after validation and defaults.
func (a *app) prefValue(key string) (string, error) {
	p := a.prefs.Snapshot()
	switch key {
	case theme.KeyMode:
		return string(p.Mode), nil
	case theme.KeyLightAccent:
		return p.LightAccent, nil
	case theme.KeyDarkAccent:
		return p.DarkAccent, nil
	case theme.KeyCursorEffect:
		return strconv.FormatBool(p.CursorEffect), nil
	case theme.KeySound:
		return strconv.FormatBool(p.Sound), nil
	case theme.KeyAIVoice:
		return strconv.FormatBool(p.AIVoice), nil
	case theme.KeyVoice:
		return p.VoiceID, nil
	case theme.KeyWallpaper:
		return p.Wallpaper.Encode(), nil
	case theme.KeyProjectFilter:
		return p.ProjectFilter, nil
	case i18n.KeyLanguage:
		return string(a.i18n.Language()), nil
	case projects.KeyViewMode:
		return string(a.projects.ViewMode()), nil
	case projects.KeyGroups:
		return strings.Join(a.projects.SelectedGroups(), ","), nil
	case projects.KeyStages:
		return strings.Join(a.projects.SelectedStages(), ","), nil
	}
	return "", fmt.Errorf("unknown preference %q", key)
}

// setPrefs validates every pair, then applies them. Theme keys go through
// one manager update so subscribers see a single change.
func (a *app) setPrefs(values map[string]string) error {
	var (
		txOps []func(tx *theme.Tx)
		other []func() error
	)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := values[key]
		switch key {
		case theme.KeyMode:
			mode, ok := theme.ParseMode(value)
			if !ok {
				return fmt.Errorf("%s: want light or dark, got %q", key, value)
			}
			txOps = append(txOps, func(tx *theme.Tx) { tx.SetMode(mode) })
		case theme.KeyLightAccent, theme.KeyDarkAccent:
			if _, err := theme.ParseHex(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			mode := theme.Light
			if key == theme.KeyDarkAccent {
				mode = theme.Dark
			}
			txOps = append(txOps, func(tx *theme.Tx) { tx.SetAccentFor(mode, value) })
		case theme.KeyCursorEffect, theme.KeySound, theme.KeyAIVoice:
			on, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s: want true or false, got %q", key, value)
			}
			switch key {
			case theme.KeyCursorEffect:
				txOps = append(txOps, func(tx *theme.Tx) { tx.SetCursorEffect(on) })
			case theme.KeySound:
				txOps = append(txOps, func(tx *theme.Tx) { tx.SetSound(on) })
			default:
				txOps = append(txOps, func(tx *theme.Tx) { tx.SetAIVoice(on) })
			}
		case theme.KeyVoice:
			txOps = append(txOps, func(tx *theme.Tx) { tx.SetVoice(value) })
		case theme.KeyWallpaper:
			w, err := theme.ParseWallpaper(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			txOps = append(txOps, func(tx *theme.Tx) { tx.SetWallpaper(w) })
		case theme.KeyProjectFilter:
			if !slices.Contains(projects.Categories, value) {
				return fmt.Errorf("%s: want one of %s, got %q", key, strings.Join(projects.Categories, ", "), value)
			}
			txOps = append(txOps, func(tx *theme.Tx) { tx.SetProjectFilter(value) })
		case i18n.KeyLanguage:
			lang, ok := i18n.ParseLanguage(value)
			if !ok {
				return fmt.Errorf("%s: want vi or en, got %q", key, value)
			}
			other = append(other, func() error { return a.i18n.SetLanguage(lang) })
		case projects.KeyViewMode:
			mode, ok := projects.ParseViewMode(value)
			if !ok {
				return fmt.Errorf("%s: want grid, list or masonry, got %q", key, value)
			}
			other = append(other, func() error { return a.projects.SetViewMode(mode) })
		case projects.KeyGroups:
			groups := splitList(value)
			other = append(other, func() error { a.projects.SetGroups(groups); return nil })
		case projects.KeyStages:
			stages := splitList(value)
			other = append(other, func() error { a.projects.SetStages(stages); return nil })
		default:
			return fmt.Errorf("unknown preference %q", key)
		}
	}

	if len(txOps) > 0 {
		a.prefs.Update(func(tx *theme.Tx) {
			for _, op := range txOps {
				op(tx)
			}
		})
	}
	for _, op := range other {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}
