package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/ui"
	"github.com/iiroan/folio/internal/voice"
)

var voicesAll bool

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the speech engine's voices",
	Long: `List the voices offered for the interface language. The first run
also picks a default voice when none has been chosen.`,
	Args: cobra.NoArgs,
	RunE: runVoices,
}

func init() {
	voicesCmd.Flags().BoolVarP(&voicesAll, "all", "a", false, "List voices of every language")
}

func runVoices(cmd *cobra.Command, args []string) error {
	if svc.synth == nil {
		return errNoSpeech()
	}
	if err := svc.loadVoices(commandContext(cmd)); err != nil {
		return err
	}

	lang := string(svc.i18n.Language())
	voices := svc.synth.Voices()
	if !voicesAll {
		voices = voice.ForLanguage(voices, lang)
	}
	selected := svc.prefs.Snapshot().VoiceID

	ui.StartScreen(svc.i18n.T("settings.aiVoiceSelect"), fmt.Sprintf("%d voices, language %s", len(voices), voice.Locale(lang)))
	if len(voices) == 0 {
		fmt.Println(ui.WarningStyle().Render("No voices for this language. Try --all."))
		return nil
	}

	width := 0
	for _, v := range voices {
		width = max(width, len(v.ID))
	}
	fmt.Println(ui.TableHeader().Render(fmt.Sprintf("  %-*s  %s", width, "ID", "Name")))
	for _, v := range voices {
		marker := ui.StatusPending().String()
		if v.ID == selected {
			marker = ui.StatusSuccess().String()
		}
		fmt.Println(marker + " " + ui.KeyValue(v.ID, v.Name+" "+ui.HintStyle().Render(v.Lang), width))
	}

	fmt.Println()
	if selected == "" {
		fmt.Println(ui.MutedStyle().Render("Selected: engine default"))
	} else if _, ok := voice.Find(svc.synth.Voices(), selected); !ok {
		fmt.Println(ui.WarningStyle().Render("Selected: " + selected + " (not available, a fallback voice is used)"))
	} else {
		fmt.Println(ui.MutedStyle().Render("Selected: " + selected))
	}
	return nil
}
