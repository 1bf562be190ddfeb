/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"github.com/wynlabs/taxo/internal/catalog"
	"github.com/wynlabs/taxo/internal/engine"
	"github.com/wynlabs/taxo/internal/taxonomy"
	"github.com/wynlabs/taxo/pkg/config"
	"github.com/wynlabs/taxo/pkg/exitcode"
	"github.com/wynlabs/taxo/pkg/logger"
)

// addBatchFlags registers the flags shared by validate and fix.
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "Catalog export file (JSON array or JSON lines); overrides the API endpoint")
	cmd.Flags().String("endpoint", "", "Catalog API base URL (default from config/TAXO_CATALOG_ENDPOINT)")
	cmd.Flags().String("vendor", "", "Only process items from this vendor")
	cmd.Flags().String("schema", "", "Taxonomy file (YAML, TOML or JSON); built-in taxonomy when omitted")
	cmd.Flags().StringP("format", "f", "", "Output format (concise|markdown|json|html|xml)")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("fail-on", "", "Exit non-zero when findings at or above this severity exist (error|warning|suggestion|never)")
	cmd.Flags().Int("concurrency", 0, "Worker count (0 = derive from --concurrency-percent)")
	cmd.Flags().Int("concurrency-percent", 0, "Workers as percent of CPU cores (default 50)")
}

// loadTaxonomy resolves the taxonomy schema from the flag, config, or built-ins.
func loadTaxonomy(cmd *cobra.Command, cfg *config.Config) (*taxonomy.Schema, error) {
	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		path = cfg.Engine.SchemaFile
	}
	if path == "" {
		return taxonomy.Default(), nil
	}
	logger.Debug(fmt.Sprintf("loading taxonomy from %s", path))
	return taxonomy.LoadSchema(path)
}

// buildCatalog resolves the item source and updater from flags and config.
// File exports are read-only, so file-backed sources carry a nil updater.
func buildCatalog(cmd *cobra.Command, cfg *config.Config) (catalog.Source, catalog.Updater, error) {
	if file, _ := cmd.Flags().GetString("catalog"); file != "" {
		return catalog.NewFileSource(file), nil, nil
	}
	if cfg.Catalog.File != "" {
		return catalog.NewFileSource(cfg.Catalog.File), nil, nil
	}

	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = cfg.Catalog.Endpoint
	}
	if endpoint == "" {
		return nil, nil, fmt.Errorf("no catalog source: pass --catalog or configure catalog.endpoint")
	}
	timeout, err := time.ParseDuration(cfg.Catalog.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := catalog.NewClient(endpoint, cfg.Catalog.Token, timeout)
	return client, client, nil
}

// runBatch executes a batch run and renders the report. Returns the process
// exit code.
func runBatch(cmd *cobra.Command, opts engine.Options) int {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", logger.Err(err))
		return exitcode.ConfigError
	}

	schema, err := loadTaxonomy(cmd, cfg)
	if err != nil {
		logger.Error("failed to load taxonomy", logger.Err(err))
		return exitcode.ConfigError
	}

	source, updater, err := buildCatalog(cmd, cfg)
	if err != nil {
		logger.Error(err.Error())
		return exitcode.ConfigError
	}
	if opts.Mode == engine.ModeFix && !opts.DryRun && updater == nil {
		logger.Error("--execute needs a writable catalog API; file exports are read-only")
		return exitcode.ConfigError
	}

	opts.Vendor, _ = cmd.Flags().GetString("vendor")
	opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	opts.ConcurrencyPercent, _ = cmd.Flags().GetInt("concurrency-percent")
	applyEngineDefaults(cmd.Flags(), cfg, &opts)
	opts.FailOn = resolveFailOn(cmd, cfg)

	report, err := engine.New(schema, source, updater).Run(cmd.Context(), opts)
	if err != nil {
		logger.Error("batch run failed", logger.Err(err))
		return exitcode.NetworkError
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	formatter := engine.NewFormatter(engine.OutputFormat(formatName))
	noColor, _ := cmd.Flags().GetBool("no-color")
	formatter.SetNoColor(noColor)
	out, err := formatter.FormatReport(report)
	if err != nil {
		logger.Error("failed to format report", logger.Err(err))
		return exitcode.GeneralError
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, []byte(out), 0600); err != nil {
			logger.Error("failed to write report", logger.Err(err))
			return exitcode.FileSystemError
		}
		logger.Info(fmt.Sprintf("report written to %s", path))
	} else {
		cmd.Print(out)
	}

	if report.HasFindingsAtOrAbove(opts.FailOn) {
		return exitcode.ValidationError
	}
	return exitcode.Success
}

// applyEngineDefaults fills concurrency settings from configuration without
// overriding explicitly set flags.
func applyEngineDefaults(flags *pflag.FlagSet, cfg *config.Config, opts *engine.Options) {
	if !flags.Changed("concurrency") {
		opts.Concurrency = cfg.Engine.Concurrency
	}
	if !flags.Changed("concurrency-percent") && cfg.Engine.ConcurrencyPercent > 0 {
		opts.ConcurrencyPercent = cfg.Engine.ConcurrencyPercent
	}
}

func resolveFailOn(cmd *cobra.Command, cfg *config.Config) taxonomy.Severity {
	failOn, _ := cmd.Flags().GetString("fail-on")
	if failOn == "" {
		failOn = cfg.Engine.FailOn
	}
	switch failOn {
	case "warning":
		return taxonomy.SeverityWarning
	case "suggestion":
		return taxonomy.SeveritySuggestion
	case "never":
		return ""
	default:
		return taxonomy.SeverityError
	}
}
