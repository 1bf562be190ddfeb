/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wynlabs/taxo/pkg/buildinfo"
	"github.com/wynlabs/taxo/pkg/exitcode"
	"github.com/wynlabs/taxo/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxo",
		Short: "Faceted tag taxonomy validation for catalog items",
		Long: `Taxo validates and auto-corrects the faceted tag taxonomy attached to
catalog items. It parses comma-separated tag strings into structured facets,
checks them against a declarative schema, infers likely facets from item
titles and descriptions, and computes minimal, idempotent fix plans.

Examples:
   taxo validate --catalog items.json        # Validate an exported catalog
   taxo validate --vendor "Cloud YHS"        # Validate one vendor via the API
   taxo fix --catalog items.json             # Show fix plans (dry-run)
   taxo fix --execute                        # Apply fix plans via the API
   taxo schema check taxonomy.yaml           # Check a custom taxonomy file`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("taxo {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newFixCommand())
	cmd.AddCommand(newSchemaCommand())
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	dryRun := true
	if execute, err := cmd.Flags().GetBool("execute"); err == nil {
		dryRun = !execute
	}

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(logLevelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
		DryRun:   cmd.Name() == "fix" && dryRun,
	})
}
