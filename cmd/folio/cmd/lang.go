package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/i18n"
	"github.com/iiroan/folio/internal/ui"
)

var langCmd = &cobra.Command{
	Use:       "lang [vi|en]",
	Short:     "Show or switch the interface language",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(i18n.Vietnamese), string(i18n.English)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Printf("%s (%s)\n", svc.i18n.LanguageName(), svc.i18n.Language())
			return nil
		}
		return switchLanguage(i18n.Language(args[0]))
	},
}

func switchLanguage(lang i18n.Language) error {
	if err := svc.i18n.SetLanguage(lang); err != nil {
		return err
	}
	fmt.Println(ui.SuccessBox().Render("✓ " + svc.i18n.LanguageName()))
	return nil
}

func runLangPrompt() error {
	current := string(svc.i18n.Language())
	options := make([]huh.Option[string], 0, len(i18n.Languages()))
	for _, lang := range i18n.Languages() {
		options = append(options, huh.NewOption(svc.i18n.TFor(lang, "languageName"), string(lang)))
	}
	err := huh.NewSelect[string]().
		Title(svc.i18n.LanguageName()).
		Options(options...).
		Value(&current).
		WithTheme(ui.HuhTheme()).
		Run()
	if err != nil {
		return err
	}
	return switchLanguage(i18n.Language(current))
}
