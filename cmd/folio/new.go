package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new folio site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		fmt.Printf("Creating new folio site: %s\n\n", dir)
		created, err := scaffold.Write(dir, scaffold.NewData(dir, time.Now()))
		if err != nil {
			return err
		}
		for _, path := range created {
			fmt.Printf("  created %s\n", path)
		}

		fmt.Println()
		fmt.Println("Done! Next steps:")
		fmt.Println()
		fmt.Printf("  cd %s\n", dir)
		fmt.Println("  folio check")
		fmt.Println("  folio serve --watch")
		fmt.Println()
		fmt.Println("Set sessionSecret in folio.yaml (or FOLIO_SESSIONSECRET) for production.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
