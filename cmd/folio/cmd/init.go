package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/config"
	"github.com/iiroan/folio/internal/ui"
)

var (
	initStorePath     string
	initSpeechCommand string
	initForce         bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a folio.yaml with the default settings",
	Long: `Write a configuration file with the defaults for this system. The
file goes to --config, or to the folio directory under the user config
directory.

Examples:
  # Keep preferences in a sqlite database
  folio init --store sqlite --store-path ~/.local/share/folio/prefs.db

  # Share preferences through redis
  folio init --store redis`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initStorePath, "store-path", "", "File or database path of the store")
	initCmd.Flags().StringVar(&initSpeechCommand, "speech-command", "", "Text-to-speech program (default: the platform's)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
	}

	if storeBackend == "" && ui.IsInteractiveTerminal() {
		if err := promptInitOptions(); err != nil {
			return err
		}
	}

	c, err := initConfig()
	if err != nil {
		return err
	}
	if err := c.Save(path); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	fmt.Println(ui.SuccessBox().Render(fmt.Sprintf(
		"Configuration written\n\nConfig: %s\nStore:  %s\n\nRun 'folio settings' to choose your preferences.",
		path, c.Store.Backend,
	)))
	return nil
}

// initConfig builds the configuration init writes from the defaults and
// the command line.
func initConfig() (*config.Config, error) {
	c := config.DefaultConfig()
	if storeBackend != "" {
		c.Store.Backend = config.NormalizeBackend(storeBackend)
	}
	if initStorePath != "" {
		c.Store.Path = initStorePath
	} else if c.Store.Backend == "sqlite" {
		c.Store.Path = strings.TrimSuffix(c.Store.Path, filepath.Ext(c.Store.Path)) + ".db"
	}
	if initSpeechCommand != "" {
		c.Speech.Command = initSpeechCommand
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func promptInitOptions() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preference store").
				Description("Where folio keeps your preferences").
				Options(
					huh.NewOption("yaml file (default)", "file"),
					huh.NewOption("sqlite database", "sqlite"),
					huh.NewOption("redis hash", "redis"),
					huh.NewOption("memory only", "memory"),
				).
				Value(&storeBackend),
		),
	).WithTheme(ui.HuhTheme()).WithKeyMap(newHuhBackOnQKeyMap()).Run()
}
