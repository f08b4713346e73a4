package commands

import (
	"github.com/spf13/cobra"

	"recipefinder/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive recipe browser",
	Long:  "Browse random recipes, search, manage favorites and rate them in a terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return ui.Run(cmd.Context(), a.env, a.session)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
