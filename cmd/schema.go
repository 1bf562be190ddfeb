/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wynlabs/taxo/internal/taxonomy"
	"github.com/wynlabs/taxo/pkg/exitcode"
	"github.com/wynlabs/taxo/pkg/logger"
	"gopkg.in/yaml.v3"
)

func newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and check taxonomy files",
	}
	cmd.AddCommand(newSchemaShowCommand())
	cmd.AddCommand(newSchemaCheckCommand())
	return cmd
}

func newSchemaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the effective taxonomy as YAML",
		Long: `Show prints the taxonomy that validate/fix would use: the built-in
taxonomy when no file is given, otherwise the file merged over the built-in
defaults.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			schema, err := resolveSchemaArg(args)
			if err != nil {
				logger.Error("failed to load taxonomy", logger.Err(err))
				os.Exit(exitcode.ConfigError)
			}
			out, err := yaml.Marshal(schema)
			if err != nil {
				logger.Error("failed to marshal taxonomy", logger.Err(err))
				os.Exit(exitcode.GeneralError)
			}
			cmd.Print(string(out))
		},
	}
}

func newSchemaCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a taxonomy file against the embedded schema",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := taxonomy.LoadSchema(args[0]); err != nil {
				logger.Error("taxonomy file is invalid", logger.Err(err))
				os.Exit(exitcode.ValidationError)
			}
			cmd.Println(fmt.Sprintf("%s is a valid taxonomy file", args[0]))
		},
	}
}

func resolveSchemaArg(args []string) (*taxonomy.Schema, error) {
	if len(args) == 0 {
		return taxonomy.Default(), nil
	}
	return taxonomy.LoadSchema(args[0])
}
