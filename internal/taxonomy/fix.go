/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/wynlabs/taxo/internal/catalog"
)

// FixOptions controls auto-fix aggressiveness.
type FixOptions struct {
	// OnlyHighConfidence restricts pattern-inferred additions to high
	// confidence matches. Deterministic mapping additions (pillar, use) are
	// always applied.
	OnlyHighConfidence bool
}

// TagAddition is a queued tag to append.
type TagAddition struct {
	Tag        string     `json:"tag"`
	Reason     string     `json:"reason"`
	Confidence Confidence `json:"confidence"`
}

// TagRemoval is a queued tag to drop.
type TagRemoval struct {
	Tag    string `json:"tag"`
	Reason string `json:"reason"`
}

// TagCorrection is a queued exact-string replacement.
type TagCorrection struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// FixPlan is the minimal, deterministic correction plan for one item.
// Applying it and re-planning must yield an empty plan.
type FixPlan struct {
	AddTags     []TagAddition   `json:"add_tags,omitempty"`
	RemoveTags  []TagRemoval    `json:"remove_tags,omitempty"`
	CorrectTags []TagCorrection `json:"correct_tags,omitempty"`
}

// Empty reports whether the plan proposes no changes.
func (p FixPlan) Empty() bool {
	return len(p.AddTags) == 0 && len(p.RemoveTags) == 0 && len(p.CorrectTags) == 0
}

// PlanFix computes the correction plan for one item. Pure function of
// (item, tags, schema, options); no hidden state.
func PlanFix(item catalog.Item, ts TagSet, s *Schema, opts FixOptions) FixPlan {
	var plan FixPlan

	addInferred := func(ns string, match Match, source string) bool {
		if opts.OnlyHighConfidence && match.Confidence != ConfidenceHigh {
			return false
		}
		plan.AddTags = append(plan.AddTags, TagAddition{
			Tag:        ns + ":" + match.Value,
			Reason:     fmt.Sprintf("inferred from %s", source),
			Confidence: match.Confidence,
		})
		return true
	}

	// Inferred facets, gated by the confidence filter
	inferredFamily := ""
	if !ts.Has(NamespaceFamily) {
		if match, ok := MatchFirst(item.Title, s.FamilyPatterns); ok {
			if addInferred(NamespaceFamily, match, "title") {
				inferredFamily = match.Value
			}
		}
	}
	if !ts.Has(NamespaceMaterial) {
		if match, ok := MatchFirst(item.Title+" "+item.Description, s.MaterialPatterns); ok {
			addInferred(NamespaceMaterial, match, "title/description")
		}
	}
	if !ts.Has(NamespaceBrand) {
		if match, ok := MatchFirst(item.Title, s.BrandPatterns); ok {
			addInferred(NamespaceBrand, match, "title")
		}
	}

	// Deterministic mappings keyed on the effective family: the existing tag
	// (after any queued correction) or the addition queued above. Always high
	// confidence.
	family := ts.First(NamespaceFamily)
	if family != "" {
		if to, ok := s.TagCorrections[NamespaceFamily+":"+family]; ok {
			if _, v, ok := strings.Cut(to, ":"); ok {
				family = v
			}
		}
	}
	if family == "" {
		family = inferredFamily
	}
	if family != "" {
		if pillar, ok := s.FamilyToPillar[family]; ok && !ts.Has(NamespacePillar) {
			plan.AddTags = append(plan.AddTags, TagAddition{
				Tag:        NamespacePillar + ":" + pillar,
				Reason:     fmt.Sprintf("pillar mapping for family %q", family),
				Confidence: ConfidenceHigh,
			})
		}
		if use, ok := s.FamilyToUse[family]; ok && !ts.Has(NamespaceUse) {
			plan.AddTags = append(plan.AddTags, TagAddition{
				Tag:        NamespaceUse + ":" + use,
				Reason:     fmt.Sprintf("use mapping for family %q", family),
				Confidence: ConfidenceHigh,
			})
		}
	}

	// Exact-string corrections and legacy removals over the raw tags
	for _, tag := range ts.Raw {
		if corrected, ok := s.TagCorrections[tag]; ok {
			plan.CorrectTags = append(plan.CorrectTags, TagCorrection{
				From:   tag,
				To:     corrected,
				Reason: "known tag correction",
			})
			continue
		}
		if s.matchesLegacy(tag) {
			plan.RemoveTags = append(plan.RemoveTags, TagRemoval{
				Tag:    tag,
				Reason: "legacy tag",
			})
		}
	}

	return plan
}

// Apply produces the new raw tag list: removals first, then corrections
// (exact match, every occurrence), then additions not already present, then
// deduplication preserving first occurrence.
func Apply(ts TagSet, plan FixPlan) []string {
	removed := make(map[string]bool, len(plan.RemoveTags))
	for _, r := range plan.RemoveTags {
		removed[r.Tag] = true
	}
	corrections := make(map[string]string, len(plan.CorrectTags))
	for _, c := range plan.CorrectTags {
		corrections[c.From] = c.To
	}

	var out []string
	for _, tag := range ts.Raw {
		if removed[tag] {
			continue
		}
		if to, ok := corrections[tag]; ok {
			tag = to
		}
		out = append(out, tag)
	}

	for _, add := range plan.AddTags {
		if !containsString(out, add.Tag) {
			out = append(out, add.Tag)
		}
	}

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, tag := range out {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		deduped = append(deduped, tag)
	}
	return deduped
}
