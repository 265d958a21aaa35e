package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/config"
	"github.com/iiroan/folio/internal/platform"
	"github.com/iiroan/folio/internal/speech"
	"github.com/iiroan/folio/internal/ui"
)

var (
	speakVoice string
	speakLang  string
)

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Read text aloud",
	Long: `Read text aloud with the selected voice. Without arguments the text is
read from stdin. Press q while speaking to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 && !isatty.IsTerminal(os.Stdin.Fd()) {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}
		return runSpeak(cmd, text)
	},
}

func init() {
	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "Voice id (default: the saved voice)")
	speakCmd.Flags().StringVar(&speakLang, "lang", "", "Language, vi or en (default: the interface language)")
}

func errNoSpeech() error {
	if err := platform.RequireSpeech("read aloud"); err != nil {
		return err
	}
	return fmt.Errorf("no speech command configured (set speech.command in %s)", config.FileName)
}

func runSpeak(cmd *cobra.Command, text string) error {
	t := svc.i18n.T
	if svc.speech == nil {
		return errNoSpeech()
	}
	p := svc.prefs.Snapshot()
	if !p.AIVoice {
		return fmt.Errorf("%s is off (folio prefs set isAiVoiceOn=true)", t("settings.aiVoice"))
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to read")
	}
	if err := svc.loadVoices(commandContext(cmd)); err != nil {
		logger.Debug("speaking with the engine default voice", "error", err)
	}

	opts := speech.SpeakOptions{
		VoiceID: p.VoiceID,
		Lang:    string(svc.i18n.Language()),
	}
	if speakVoice != "" {
		opts.VoiceID = speakVoice
	}
	if speakLang != "" {
		opts.Lang = speakLang
	}

	// Running the command is the user's interaction.
	svc.gesture()
	return ui.RunWithSpinner(t("projectPostPopup.nowPlaying"), func(done func(error)) {
		opts.OnEnd = func() { done(nil) }
		svc.speech.Speak(text, opts)
	}, svc.speech.Cancel)
}

func runSpeakPrompt() error {
	t := svc.i18n.T
	var text string
	err := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(t("projectPostPopup.listenToArticle")).
			Value(&text),
	)).WithTheme(ui.HuhTheme()).Run()
	if err != nil {
		return err
	}
	return runSpeak(nil, text)
}
