package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the root style rule derived from the preferences",
	Long: `Print the :root rule a web front end applies for the current color
mode and accent, e.g.

  :root.dark {
    --accent-color: #FFFFFF;
    --accent-color-rgb: 255, 255, 255;
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(svc.sheet.CSS())
		return nil
	},
}
