/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import (
	"fmt"
	"regexp"
)

// Confidence is a qualitative strength tier for a pattern-inferred facet
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// PatternRule is a single ordered inference rule: if Pattern matches the text
// and no exclusion matches, Value is inferred at the rule's Confidence.
// Rule order encodes priority; more specific patterns must precede generic ones.
type PatternRule struct {
	Pattern    string     `json:"pattern" yaml:"pattern" toml:"pattern"`
	Value      string     `json:"value" yaml:"value" toml:"value"`
	Confidence Confidence `json:"confidence" yaml:"confidence" toml:"confidence"`
	Exclude    []string   `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	re      *regexp.Regexp
	exclude []*regexp.Regexp
}

// compile precompiles the rule's pattern and exclusions, case-insensitive.
func (r *PatternRule) compile() error {
	re, err := regexp.Compile("(?i)" + r.Pattern)
	if err != nil {
		return fmt.Errorf("pattern %q: %w", r.Pattern, err)
	}
	r.re = re
	r.exclude = r.exclude[:0]
	for _, ex := range r.Exclude {
		xre, err := regexp.Compile("(?i)" + ex)
		if err != nil {
			return fmt.Errorf("exclusion %q for pattern %q: %w", ex, r.Pattern, err)
		}
		r.exclude = append(r.exclude, xre)
	}
	if r.Confidence == "" {
		r.Confidence = ConfidenceMedium
	}
	return nil
}

// excluded reports whether any exclusion pattern matches the text.
func (r *PatternRule) excluded(text string) bool {
	for _, xre := range r.exclude {
		if xre.MatchString(text) {
			return true
		}
	}
	return false
}

// Match is the result of a successful pattern rule evaluation
type Match struct {
	Value      string
	Confidence Confidence
}

// MatchFirst scans rules in declared order and returns the first match whose
// exclusions do not fire. An excluded rule is skipped, not the whole scan.
func MatchFirst(text string, rules []PatternRule) (Match, bool) {
	for i := range rules {
		r := &rules[i]
		if r.re == nil || !r.re.MatchString(text) {
			continue
		}
		if r.excluded(text) {
			continue
		}
		return Match{Value: r.Value, Confidence: r.Confidence}, true
	}
	return Match{}, false
}

// MatchAll returns every non-excluded match in declared order. Used by checks
// that need the full candidate set rather than the winning rule.
func MatchAll(text string, rules []PatternRule) []Match {
	var matches []Match
	for i := range rules {
		r := &rules[i]
		if r.re == nil || !r.re.MatchString(text) {
			continue
		}
		if r.excluded(text) {
			continue
		}
		matches = append(matches, Match{Value: r.Value, Confidence: r.Confidence})
	}
	return matches
}
