package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/folio/internal/ui"
	"github.com/iiroan/folio/internal/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information about folio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionJSON {
			data, err := info.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Println(ui.Title().Render("folio " + info.Short()))
		for _, f := range info.Fields() {
			fmt.Println(ui.KeyValue(f[0]+":", f[1], 11))
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print as JSON")
}
