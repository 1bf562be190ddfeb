/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/

// Package engine runs the taxonomy validation/fix batch over a catalog and
// aggregates per-item results into a Report.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/wynlabs/taxo/internal/catalog"
	"github.com/wynlabs/taxo/internal/taxonomy"
	"github.com/wynlabs/taxo/pkg/buildinfo"
	"github.com/wynlabs/taxo/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates fetch, per-item evaluation and optional fix application.
// The schema is shared read-only across all workers.
type Engine struct {
	schema  *taxonomy.Schema
	source  catalog.Source
	updater catalog.Updater
}

// New creates a batch engine. The updater may be nil for validate-only runs.
func New(schema *taxonomy.Schema, source catalog.Source, updater catalog.Updater) *Engine {
	return &Engine{schema: schema, source: source, updater: updater}
}

// Run fetches the item list and processes every item. A single item's failure
// never aborts the batch; cancellation stops before the next item and partial
// results remain reportable.
func (e *Engine) Run(ctx context.Context, opts Options) (*Report, error) {
	startTime := time.Now()

	items, err := e.source.Fetch(ctx, opts.Vendor)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog items: %w", err)
	}

	workerCount := workerCount(opts)
	logger.Info(fmt.Sprintf("Starting %s run over %d items (workers=%d)", opts.Mode, len(items), workerCount))

	// Per-item computation is pure; workers write disjoint slots, so the only
	// serialization point is the summary merge after Wait.
	results := make([]ItemResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for i, item := range items {
		if gctx.Err() != nil {
			results[i] = ItemResult{ItemID: item.ID, Title: item.Title, Error: "cancelled before processing"}
			continue
		}
		i, item := i, item
		g.Go(func() error {
			results[i] = e.processItem(gctx, item, opts)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{
		Metadata: ReportMetadata{
			GeneratedAt:   time.Now(),
			Tool:          "taxo",
			Version:       buildinfo.BinaryVersion,
			Vendor:        opts.Vendor,
			Mode:          opts.Mode,
			ExecutionTime: time.Since(startTime).Round(time.Millisecond).String(),
		},
		Items: results,
	}
	e.aggregate(report)

	logger.Info(fmt.Sprintf("Run completed in %s: %d issues across %d items (%d failed)",
		report.Metadata.ExecutionTime, report.Summary.TotalIssues, report.Summary.TotalItems, report.Summary.FailedItems))
	if ctx.Err() != nil {
		logger.Warn("run cancelled; report covers items processed before cancellation")
	}
	return report, nil
}

// processItem parses, evaluates and (in fix mode) plans and applies the fix
// for one item.
func (e *Engine) processItem(ctx context.Context, item catalog.Item, opts Options) ItemResult {
	result := ItemResult{ItemID: item.ID, Title: item.Title}

	if strings.TrimSpace(item.Title) == "" {
		result.Error = "item has no title"
		return result
	}

	ts := taxonomy.Parse(item.TagString)
	result.Issues = taxonomy.Evaluate(item, ts, e.schema)

	if opts.Mode != ModeFix {
		return result
	}

	plan := taxonomy.PlanFix(item, ts, e.schema, taxonomy.FixOptions{OnlyHighConfidence: opts.OnlyHighConfidence})
	if plan.Empty() {
		return result
	}
	result.Fix = &plan
	result.NewTags = strings.Join(taxonomy.Apply(ts, plan), ", ")

	if opts.DryRun || e.updater == nil {
		return result
	}
	if err := e.updater.ApplyTagUpdate(ctx, item.ID, result.NewTags); err != nil {
		result.ApplyError = err.Error()
		logger.Warn(fmt.Sprintf("failed to apply tag update for item %s", item.ID), logger.Err(err))
		return result
	}
	result.Applied = true
	return result
}

// aggregate fills Summary and IssuesByType from the item results.
func (e *Engine) aggregate(report *Report) {
	summary := ReportSummary{
		TotalItems:       len(report.Items),
		IssuesBySeverity: make(map[taxonomy.Severity]int),
	}
	issuesByType := make(map[taxonomy.IssueType][]taxonomy.Issue)

	for _, item := range report.Items {
		if item.Error != "" {
			summary.FailedItems++
			continue
		}
		if item.Applied {
			summary.FixedItems++
		}

		hasError, hasWarning := false, false
		for _, issue := range item.Issues {
			summary.TotalIssues++
			summary.IssuesBySeverity[issue.Severity]++
			issuesByType[issue.Type] = append(issuesByType[issue.Type], issue)
			switch issue.Severity {
			case taxonomy.SeverityError:
				hasError = true
			case taxonomy.SeverityWarning:
				hasWarning = true
			}
		}
		switch {
		case hasError:
			summary.ItemsWithErrors++
		case hasWarning:
			summary.ItemsWithWarnings++
		default:
			summary.ValidItems++
		}
	}

	report.Summary = summary
	if len(issuesByType) > 0 {
		report.IssuesByType = issuesByType
	}
}

// workerCount determines the worker pool size from options and CPU cores.
func workerCount(opts Options) int {
	if opts.Concurrency > 0 {
		return opts.Concurrency
	}
	percent := opts.ConcurrencyPercent
	if percent <= 0 {
		percent = 50
	}
	count := (runtime.NumCPU() * percent) / 100
	if count < 1 {
		count = 1
	}
	return count
}
