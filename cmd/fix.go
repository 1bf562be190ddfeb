/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wynlabs/taxo/internal/engine"
)

func newFixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Compute and optionally apply taxonomy fix plans",
		Long: `Fix runs validation and computes a minimal correction plan per item:
tags to add (pattern-inferred facets plus deterministic pillar/use mappings),
legacy tags to remove and known wrong tags to correct. Plans are printed by
default; --execute persists them through the catalog API. Applying a plan is
idempotent: a second run over corrected items proposes nothing.`,
		Run: func(cmd *cobra.Command, _ []string) {
			execute, _ := cmd.Flags().GetBool("execute")
			highOnly, _ := cmd.Flags().GetBool("high-confidence-only")

			opts := engine.DefaultOptions()
			opts.Mode = engine.ModeFix
			opts.DryRun = !execute
			opts.OnlyHighConfidence = highOnly
			if code := runBatch(cmd, opts); code != 0 {
				os.Exit(code)
			}
		},
	}
	addBatchFlags(cmd)
	cmd.Flags().Bool("execute", false, "Apply fix plans via the catalog API (default is dry-run)")
	cmd.Flags().Bool("high-confidence-only", false, "Only apply high-confidence inferred additions")
	return cmd
}
