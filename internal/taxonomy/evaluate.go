/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/wynlabs/taxo/internal/catalog"
	"github.com/wynlabs/taxo/pkg/logger"
)

// Evaluate runs every validation pass over one item's parsed tags and returns
// the accumulated issues. Passes are independent and never short-circuit each
// other; enumeration order is fixed so repeated calls yield identical output.
// The schema is read-only and shared safely across concurrent calls.
func Evaluate(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	issues = append(issues, checkRequired(item, ts, s)...)
	issues = append(issues, checkRecommended(item, ts, s)...)
	issues = append(issues, checkValueDomains(item, ts, s)...)
	issues = append(issues, checkFamilyPillar(item, ts, s)...)
	issues = append(issues, checkFamilyUse(item, ts, s)...)
	issues = append(issues, checkIncompatibilities(item, ts, s)...)
	issues = append(issues, checkTitleFamily(item, ts, s)...)
	issues = append(issues, checkMissingMaterial(item, ts, s)...)
	issues = append(issues, checkMissingBrand(item, ts, s)...)
	issues = append(issues, checkDuplicateNamespaces(item, ts, s)...)
	issues = append(issues, checkLegacyTags(item, ts, s)...)
	issues = append(issues, checkJointSpecs(item, ts, s)...)
	return issues
}

func checkRequired(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, ns := range s.RequiredNamespaces {
		if !ts.Has(ns) {
			issues = append(issues, Issue{
				ItemID:     item.ID,
				Type:       IssueMissingRequiredTag,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("missing required tag namespace %q", ns),
				Suggestion: fmt.Sprintf("add a %s:<value> tag", ns),
			})
		}
	}
	return issues
}

func checkRecommended(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, ns := range s.RecommendedNamespaces {
		if !ts.Has(ns) {
			issues = append(issues, Issue{
				ItemID:   item.ID,
				Type:     IssueMissingRecommendedTag,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("missing recommended tag namespace %q", ns),
			})
		}
	}
	return issues
}

// checkValueDomains walks Raw rather than the namespaced map so issue order
// tracks tag order.
func checkValueDomains(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, tag := range ts.Raw {
		ns, value, ok := splitTag(tag)
		if !ok {
			continue
		}
		allowed, constrained := s.ValidValues[ns]
		if !constrained {
			continue
		}
		if !containsString(allowed, value) {
			issues = append(issues, Issue{
				ItemID:   item.ID,
				Type:     IssueInvalidTagValue,
				Severity: SeverityError,
				Message:  fmt.Sprintf("value %q is not valid for namespace %q", value, ns),
			})
		}
	}
	return issues
}

func checkFamilyPillar(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, family := range ts.Namespaced[NamespaceFamily] {
		expected, ok := s.FamilyToPillar[family]
		if !ok {
			// Degraded pass: family present in data but absent from the
			// mapping. Skip the check for this value, keep the batch moving.
			logger.Debug(fmt.Sprintf("no pillar mapping for family %q (item %s); skipping pillar consistency", family, item.ID))
			continue
		}
		if ts.Has(NamespacePillar) && !ts.HasValue(NamespacePillar, expected) {
			issues = append(issues, Issue{
				ItemID:     item.ID,
				Type:       IssueInconsistentFamilyPillar,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("family %q expects pillar %q, found %q", family, expected, ts.First(NamespacePillar)),
				Suggestion: fmt.Sprintf("replace pillar tag with pillar:%s", expected),
			})
		}
	}
	return issues
}

func checkFamilyUse(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, family := range ts.Namespaced[NamespaceFamily] {
		expected, ok := s.FamilyToUse[family]
		if !ok {
			// Partial mapping: no entry means no expectation.
			continue
		}
		if ts.Has(NamespaceUse) && !ts.HasValue(NamespaceUse, expected) {
			issues = append(issues, Issue{
				ItemID:     item.ID,
				Type:       IssueInconsistentFamilyUse,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("family %q usually carries use %q, found %q", family, expected, ts.First(NamespaceUse)),
				Suggestion: fmt.Sprintf("consider use:%s", expected),
			})
		}
	}
	return issues
}

func checkIncompatibilities(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, rule := range s.IncompatibilityRules {
		holds := true
		for _, cond := range rule.Condition {
			if !cond.holds(ts) {
				holds = false
				break
			}
		}
		if !holds {
			continue
		}
		if rule.Forbidden != nil && rule.Forbidden.holds(ts) {
			issues = append(issues, Issue{
				ItemID:   item.ID,
				Type:     IssueIncompatibleTags,
				Severity: rule.Severity,
				Message:  rule.Message,
			})
		}
		if rule.Required != nil && !rule.Required.holds(ts) {
			issues = append(issues, Issue{
				ItemID:     item.ID,
				Type:       IssueMissingRequiredCombination,
				Severity:   rule.Severity,
				Message:    rule.Message,
				Suggestion: fmt.Sprintf("add %s", rule.Required.Tag()),
			})
		}
	}
	return issues
}

// checkTitleFamily compares the tagged family against every candidate family
// the title patterns produce. A tagged item mismatches only when no candidate
// agrees with any of its family values.
func checkTitleFamily(item catalog.Item, ts TagSet, s *Schema) []Issue {
	candidates := MatchAll(item.Title, s.FamilyPatterns)
	if len(candidates) == 0 {
		return nil
	}

	families := ts.Namespaced[NamespaceFamily]
	if len(families) == 0 {
		best := candidates[0]
		return []Issue{{
			ItemID:     item.ID,
			Type:       IssueSuggestedFamily,
			Severity:   SeveritySuggestion,
			Message:    fmt.Sprintf("title suggests family %q (%s confidence)", best.Value, best.Confidence),
			Suggestion: fmt.Sprintf("add family:%s", best.Value),
		}}
	}

	for _, cand := range candidates {
		for _, family := range families {
			if cand.Value == family {
				return nil
			}
		}
	}
	return []Issue{{
		ItemID:   item.ID,
		Type:     IssueTitleFamilyMismatch,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("title suggests family %q but item is tagged family:%s", candidates[0].Value, families[0]),
	}}
}

func checkMissingMaterial(item catalog.Item, ts TagSet, s *Schema) []Issue {
	match, ok := MatchFirst(item.Title+" "+item.Description, s.MaterialPatterns)
	if !ok || ts.HasValue(NamespaceMaterial, match.Value) {
		return nil
	}
	return []Issue{{
		ItemID:     item.ID,
		Type:       IssueMissingMaterial,
		Severity:   SeveritySuggestion,
		Message:    fmt.Sprintf("item text suggests material %q which is not tagged", match.Value),
		Suggestion: fmt.Sprintf("add material:%s", match.Value),
	}}
}

func checkMissingBrand(item catalog.Item, ts TagSet, s *Schema) []Issue {
	match, ok := MatchFirst(item.Title, s.BrandPatterns)
	if !ok || ts.HasValue(NamespaceBrand, match.Value) {
		return nil
	}
	return []Issue{{
		ItemID:     item.ID,
		Type:       IssueMissingBrand,
		Severity:   SeveritySuggestion,
		Message:    fmt.Sprintf("title suggests brand %q which is not tagged", match.Value),
		Suggestion: fmt.Sprintf("add brand:%s", match.Value),
	}}
}

// checkDuplicateNamespaces walks namespaces in first-occurrence order so the
// issue list stays deterministic.
func checkDuplicateNamespaces(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	seen := make(map[string]bool)
	for _, tag := range ts.Raw {
		ns, _, ok := splitTag(tag)
		if !ok || seen[ns] {
			continue
		}
		seen[ns] = true
		if len(ts.Namespaced[ns]) > 1 && !s.multiValue(ns) {
			issues = append(issues, Issue{
				ItemID:   item.ID,
				Type:     IssueDuplicateNamespace,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("namespace %q holds %d values but is single-value", ns, len(ts.Namespaced[ns])),
			})
		}
	}
	return issues
}

func checkLegacyTags(item catalog.Item, ts TagSet, s *Schema) []Issue {
	var issues []Issue
	for _, tag := range ts.Raw {
		if s.matchesLegacy(tag) {
			issues = append(issues, Issue{
				ItemID:     item.ID,
				Type:       IssueOrphanedTag,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("legacy tag %q should be removed", tag),
				Suggestion: fmt.Sprintf("remove %q", tag),
			})
		}
	}
	return issues
}

func checkJointSpecs(item catalog.Item, ts TagSet, s *Schema) []Issue {
	hasJointFamily := false
	for _, family := range ts.Namespaced[NamespaceFamily] {
		if s.hasJoint(family) {
			hasJointFamily = true
			break
		}
	}
	if !hasJointFamily {
		return nil
	}

	var issues []Issue
	if match, ok := MatchFirst(item.Title, s.JointSizePatterns); ok && !ts.HasValue(NamespaceJointSize, match.Value) {
		issues = append(issues, Issue{
			ItemID:     item.ID,
			Type:       IssueMissingJointSize,
			Severity:   SeveritySuggestion,
			Message:    fmt.Sprintf("title implies joint size %q which is not tagged", match.Value),
			Suggestion: fmt.Sprintf("add joint-size:%s", match.Value),
		})
	}
	if match, ok := MatchFirst(item.Title, s.JointGenderPatterns); ok && !ts.HasValue(NamespaceJointGender, match.Value) {
		issues = append(issues, Issue{
			ItemID:     item.ID,
			Type:       IssueMissingJointGender,
			Severity:   SeveritySuggestion,
			Message:    fmt.Sprintf("title implies joint gender %q which is not tagged", match.Value),
			Suggestion: fmt.Sprintf("add joint-gender:%s", match.Value),
		})
	}
	return issues
}

func splitTag(tag string) (namespace, value string, ok bool) {
	ns, v, ok := strings.Cut(tag, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(ns), strings.TrimSpace(v), true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
