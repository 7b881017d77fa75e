package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every document in both collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed int
		for _, dir := range []string{siteCfg.ArticleDir, siteCfg.CraftDir} {
			if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
				logger.Warnf("%s does not exist, skipping", dir)
				continue
			}
			for _, err := range content.Check(os.DirFS(dir), ".") {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", dir, err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d invalid document(s)", failed)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all documents are valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
