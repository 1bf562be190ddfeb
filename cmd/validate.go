/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wynlabs/taxo/internal/engine"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate catalog item tags against the taxonomy",
		Long: `Validate parses every item's tag string, runs the full set of taxonomy
checks (required/recommended namespaces, value domains, cross-field
consistency, pattern-based inference) and reports the findings. No item is
ever modified.`,
		Run: func(cmd *cobra.Command, _ []string) {
			opts := engine.DefaultOptions()
			opts.Mode = engine.ModeValidate
			if code := runBatch(cmd, opts); code != 0 {
				os.Exit(code)
			}
		},
	}
	addBatchFlags(cmd)
	return cmd
}
