/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package engine

import (
	"time"

	"github.com/wynlabs/taxo/internal/taxonomy"
)

// Mode represents the operation mode of a batch run
type Mode string

const (
	ModeValidate Mode = "validate" // Report issues, no changes
	ModeFix      Mode = "fix"      // Report issues and compute/apply fix plans
)

// Options contains configuration for a batch run
type Options struct {
	Vendor             string            `json:"vendor"`
	Mode               Mode              `json:"mode"`
	DryRun             bool              `json:"dry_run"`              // fix mode: compute plans but never persist
	OnlyHighConfidence bool              `json:"only_high_confidence"` // gate inferred additions
	FailOn             taxonomy.Severity `json:"fail_on"`
	// If Concurrency > 0 it is used directly. Otherwise ConcurrencyPercent
	// determines worker count as a percentage of available CPU cores (1-100).
	// Values <= 0 default to 50.
	Concurrency        int `json:"concurrency"`
	ConcurrencyPercent int `json:"concurrency_percent"`
}

// DefaultOptions returns default run options
func DefaultOptions() Options {
	return Options{
		Mode:               ModeValidate,
		DryRun:             true,
		FailOn:             taxonomy.SeverityError,
		Concurrency:        0,
		ConcurrencyPercent: 50,
	}
}

// ItemResult holds the outcome for a single catalog item
type ItemResult struct {
	ItemID  string            `json:"item_id"`
	Title   string            `json:"title"`
	Issues  []taxonomy.Issue  `json:"issues,omitempty"`
	Fix     *taxonomy.FixPlan `json:"fix,omitempty"`
	NewTags string            `json:"new_tags,omitempty"` // canonical tag string after applying Fix
	Applied bool              `json:"applied"`
	// ApplyError records a persistence failure; it never aborts the batch
	ApplyError string `json:"apply_error,omitempty"`
	// Error records an item-level processing failure (item excluded from
	// issue aggregation, counted in Summary.FailedItems)
	Error string `json:"error,omitempty"`
}

// ReportMetadata contains metadata about the batch run
type ReportMetadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	Tool          string    `json:"tool"`
	Version       string    `json:"version"`
	Vendor        string    `json:"vendor,omitempty"`
	Mode          Mode      `json:"mode"`
	ExecutionTime string    `json:"execution_time"`
}

// ReportSummary provides high-level batch statistics
type ReportSummary struct {
	TotalItems        int                       `json:"total_items"`
	ValidItems        int                       `json:"valid_items"`
	ItemsWithErrors   int                       `json:"items_with_errors"`
	ItemsWithWarnings int                       `json:"items_with_warnings"`
	FailedItems       int                       `json:"failed_items"`
	FixedItems        int                       `json:"fixed_items"`
	TotalIssues       int                       `json:"total_issues"`
	IssuesBySeverity  map[taxonomy.Severity]int `json:"issues_by_severity"`
}

// Report is the complete batch result. Items preserve input order so repeated
// runs over the same catalog are byte-identical.
type Report struct {
	Metadata     ReportMetadata                          `json:"metadata"`
	Summary      ReportSummary                           `json:"summary"`
	Items        []ItemResult                            `json:"items"`
	IssuesByType map[taxonomy.IssueType][]taxonomy.Issue `json:"issues_by_type,omitempty"`
}

// HasFindingsAtOrAbove reports whether any issue meets the severity threshold.
func (r *Report) HasFindingsAtOrAbove(threshold taxonomy.Severity) bool {
	if threshold == "" {
		return false
	}
	for _, item := range r.Items {
		for _, issue := range item.Issues {
			if issue.Severity.Rank() >= threshold.Rank() {
				return true
			}
		}
	}
	return false
}
