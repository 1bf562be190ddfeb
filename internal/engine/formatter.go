/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/beevik/etree"
	"github.com/mattn/go-runewidth"
	"github.com/wynlabs/taxo/internal/taxonomy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OutputFormat represents the format for report output
type OutputFormat string

const (
	FormatConcise  OutputFormat = "concise"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatHTML     OutputFormat = "html"
	FormatXML      OutputFormat = "xml"
)

// topOffenders caps the per-item breakdown in human-readable formats.
const topOffenders = 10

// Formatter renders batch reports
type Formatter struct {
	format  OutputFormat
	noColor bool
}

// NewFormatter creates a report formatter
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// SetNoColor disables ANSI colors in the concise format. The NO_COLOR
// environment variable has the same effect.
func (f *Formatter) SetNoColor(noColor bool) {
	f.noColor = noColor
}

// FormatReport formats a report according to the configured format
func (f *Formatter) FormatReport(report *Report) (string, error) {
	switch f.format {
	case FormatConcise:
		return f.formatConcise(report), nil
	case FormatMarkdown:
		return f.formatMarkdown(report), nil
	case FormatJSON:
		return f.formatJSON(report)
	case FormatHTML:
		return f.formatHTML(report)
	case FormatXML:
		return f.formatXML(report)
	default:
		return "", fmt.Errorf("unsupported format: %s", f.format)
	}
}

var titleCaser = cases.Title(language.English)

// humanizeType turns an issue type into a heading ("missing_required_tag" ->
// "Missing Required Tag").
func humanizeType(t taxonomy.IssueType) string {
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// orderedTypes returns issue types sorted by count (desc), then name.
func orderedTypes(report *Report) []taxonomy.IssueType {
	types := make([]taxonomy.IssueType, 0, len(report.IssuesByType))
	for t := range report.IssuesByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		ci, cj := len(report.IssuesByType[types[i]]), len(report.IssuesByType[types[j]])
		if ci != cj {
			return ci > cj
		}
		return types[i] < types[j]
	})
	return types
}

// worstItems returns the items with the most issues, input order breaking ties.
func worstItems(report *Report, limit int) []ItemResult {
	items := make([]ItemResult, 0, len(report.Items))
	for _, item := range report.Items {
		if len(item.Issues) > 0 || item.Error != "" {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return len(items[i].Issues) > len(items[j].Issues)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// formatConcise prints a short, colorized summary
func (f *Formatter) formatConcise(report *Report) string {
	color := func(code string, s string) string {
		if f.noColor || os.Getenv("NO_COLOR") != "" {
			return s
		}
		return "\x1b[" + code + "m" + s + "\x1b[0m"
	}
	bold := func(s string) string { return color("1", s) }
	green := func(s string) string { return color("32", s) }
	yellow := func(s string) string { return color("33", s) }
	red := func(s string) string { return color("31", s) }

	var sb strings.Builder
	s := report.Summary

	fmt.Fprintf(&sb, "%s mode=%s | items: %d | issues: %d | time: %s\n",
		bold("Taxonomy"), report.Metadata.Mode, s.TotalItems, s.TotalIssues, report.Metadata.ExecutionTime)
	fmt.Fprintf(&sb, " - %s %d  %s %d  %s %d  clean %d  failed %d\n",
		red("errors"), s.IssuesBySeverity[taxonomy.SeverityError],
		yellow("warnings"), s.IssuesBySeverity[taxonomy.SeverityWarning],
		green("suggestions"), s.IssuesBySeverity[taxonomy.SeveritySuggestion],
		s.ValidItems, s.FailedItems)
	if report.Metadata.Mode == ModeFix {
		fmt.Fprintf(&sb, " - fixes applied: %d\n", s.FixedItems)
	}

	for _, t := range orderedTypes(report) {
		fmt.Fprintf(&sb, " - %-28s %d\n", string(t), len(report.IssuesByType[t]))
	}

	worst := worstItems(report, topOffenders)
	if len(worst) > 0 {
		fmt.Fprintf(&sb, "%s\n", bold("Top items"))
		width := 0
		for _, item := range worst {
			if w := runewidth.StringWidth(item.Title); w > width {
				width = w
			}
		}
		if width > 48 {
			width = 48
		}
		for _, item := range worst {
			title := runewidth.Truncate(item.Title, width, "…")
			if item.Error != "" {
				fmt.Fprintf(&sb, " %s  %s\n", runewidth.FillRight(title, width), red("failed: "+item.Error))
				continue
			}
			fmt.Fprintf(&sb, " %s  %d issues\n", runewidth.FillRight(title, width), len(item.Issues))
		}
	}
	return sb.String()
}

// formatMarkdown creates a markdown report
func (f *Formatter) formatMarkdown(report *Report) string {
	var sb strings.Builder
	s := report.Summary

	fmt.Fprintf(&sb, "# Taxonomy Report\n\n")
	fmt.Fprintf(&sb, "Generated by %s %s at %s (mode: %s",
		report.Metadata.Tool, report.Metadata.Version,
		report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"), report.Metadata.Mode)
	if report.Metadata.Vendor != "" {
		fmt.Fprintf(&sb, ", vendor: %s", report.Metadata.Vendor)
	}
	fmt.Fprintf(&sb, ")\n\n")

	fmt.Fprintf(&sb, "## Summary\n\n")
	fmt.Fprintf(&sb, "| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Total items | %d |\n", s.TotalItems)
	fmt.Fprintf(&sb, "| Clean items | %d |\n", s.ValidItems)
	fmt.Fprintf(&sb, "| Items with errors | %d |\n", s.ItemsWithErrors)
	fmt.Fprintf(&sb, "| Items with warnings | %d |\n", s.ItemsWithWarnings)
	fmt.Fprintf(&sb, "| Failed items | %d |\n", s.FailedItems)
	fmt.Fprintf(&sb, "| Total issues | %d |\n", s.TotalIssues)
	for _, sev := range []taxonomy.Severity{taxonomy.SeverityError, taxonomy.SeverityWarning, taxonomy.SeveritySuggestion} {
		fmt.Fprintf(&sb, "| %s | %d |\n", titleCaser.String(string(sev)+"s"), s.IssuesBySeverity[sev])
	}
	sb.WriteString("\n")

	if len(report.IssuesByType) > 0 {
		fmt.Fprintf(&sb, "## Issues by Type\n\n")
		for _, t := range orderedTypes(report) {
			issues := report.IssuesByType[t]
			fmt.Fprintf(&sb, "### %s (%d)\n\n", humanizeType(t), len(issues))
			for _, issue := range issues {
				fmt.Fprintf(&sb, "- `%s` [%s] %s", issue.ItemID, issue.Severity, issue.Message)
				if issue.Suggestion != "" {
					fmt.Fprintf(&sb, " — %s", issue.Suggestion)
				}
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	worst := worstItems(report, topOffenders)
	if len(worst) > 0 {
		fmt.Fprintf(&sb, "## Top Items\n\n")
		for _, item := range worst {
			if item.Error != "" {
				fmt.Fprintf(&sb, "- **%s** (`%s`): failed — %s\n", item.Title, item.ItemID, item.Error)
				continue
			}
			fmt.Fprintf(&sb, "- **%s** (`%s`): %d issues\n", item.Title, item.ItemID, len(item.Issues))
		}
	}
	return sb.String()
}

// formatJSON creates a JSON report
func (f *Formatter) formatJSON(report *Report) (string, error) {
	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Taxonomy Report — {{metadata.tool}} {{metadata.version}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.8rem; text-align: left; }
.error { color: #b00020; } .warning { color: #9a6700; } .suggestion { color: #1a7f37; }
</style>
</head>
<body>
<h1>Taxonomy Report</h1>
<p>Mode {{metadata.mode}}{{#if metadata.vendor}}, vendor {{metadata.vendor}}{{/if}} — {{summary.total_items}} items, {{summary.total_issues}} issues in {{metadata.execution_time}}</p>
<table>
<tr><th>Item</th><th>Severity</th><th>Type</th><th>Message</th></tr>
{{#each rows}}
<tr><td>{{item_id}}</td><td class="{{severity}}">{{severity}}</td><td>{{type}}</td><td>{{message}}</td></tr>
{{/each}}
</table>
</body>
</html>
`

// formatHTML renders the report through a Handlebars template
func (f *Formatter) formatHTML(report *Report) (string, error) {
	type row struct {
		ItemID   string `json:"item_id"`
		Severity string `json:"severity"`
		Type     string `json:"type"`
		Message  string `json:"message"`
	}
	var rows []row
	for _, item := range report.Items {
		for _, issue := range item.Issues {
			rows = append(rows, row{
				ItemID:   issue.ItemID,
				Severity: string(issue.Severity),
				Type:     string(issue.Type),
				Message:  issue.Message,
			})
		}
	}

	// Round-trip through JSON so the template sees the report's wire names.
	var ctx map[string]interface{}
	jsonData, err := json.Marshal(struct {
		Metadata ReportMetadata `json:"metadata"`
		Summary  ReportSummary  `json:"summary"`
		Rows     []row          `json:"rows"`
	}{report.Metadata, report.Summary, rows})
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(jsonData, &ctx); err != nil {
		return "", err
	}

	out, err := raymond.Render(htmlTemplate, ctx)
	if err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return out, nil
}

// formatXML renders the report as an XML document (feed-style export)
func (f *Formatter) formatXML(report *Report) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("taxonomyReport")
	root.CreateAttr("tool", report.Metadata.Tool)
	root.CreateAttr("version", report.Metadata.Version)
	root.CreateAttr("mode", string(report.Metadata.Mode))
	root.CreateAttr("generatedAt", report.Metadata.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))

	summary := root.CreateElement("summary")
	summary.CreateAttr("totalItems", fmt.Sprintf("%d", report.Summary.TotalItems))
	summary.CreateAttr("totalIssues", fmt.Sprintf("%d", report.Summary.TotalIssues))
	summary.CreateAttr("failedItems", fmt.Sprintf("%d", report.Summary.FailedItems))

	itemsEl := root.CreateElement("items")
	for _, item := range report.Items {
		if len(item.Issues) == 0 && item.Error == "" {
			continue
		}
		itemEl := itemsEl.CreateElement("item")
		itemEl.CreateAttr("id", item.ItemID)
		itemEl.CreateElement("title").SetText(item.Title)
		if item.Error != "" {
			itemEl.CreateElement("error").SetText(item.Error)
			continue
		}
		for _, issue := range item.Issues {
			issueEl := itemEl.CreateElement("issue")
			issueEl.CreateAttr("type", string(issue.Type))
			issueEl.CreateAttr("severity", string(issue.Severity))
			issueEl.SetText(issue.Message)
		}
		if item.NewTags != "" {
			itemEl.CreateElement("newTags").SetText(item.NewTags)
		}
	}

	doc.Indent(2)
	return doc.WriteToString()
}
