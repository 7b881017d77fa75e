package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `build renders every page, feed, sitemap and cover thumbnail through the
same handlers serve uses and writes them to the output directory, together
with a copy of the static directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := folio.New(siteCfg, folio.ViewFuncs{})
		defer app.Close()
		if err := app.Export(cmd.Context(), buildOut); err != nil {
			return err
		}
		logger.Infof("site written to %s", buildOut)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	rootCmd.AddCommand(buildCmd)
}
