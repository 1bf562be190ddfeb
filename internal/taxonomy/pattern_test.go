/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import "testing"

func compileRules(t *testing.T, rules []PatternRule) []PatternRule {
	t.Helper()
	for i := range rules {
		if err := rules[i].compile(); err != nil {
			t.Fatalf("compile rule %d: %v", i, err)
		}
	}
	return rules
}

func TestMatchFirstPriority(t *testing.T) {
	rules := compileRules(t, []PatternRule{
		{Pattern: `water\s?pipe`, Value: "glass-bong", Confidence: ConfidenceHigh},
		{Pattern: `\bpipe\b`, Value: "spoon-pipe", Confidence: ConfidenceMedium},
	})

	match, ok := MatchFirst("Beaker Water Pipe", rules)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Value != "glass-bong" {
		t.Errorf("Value = %q, want %q (earlier rule wins)", match.Value, "glass-bong")
	}
	if match.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", match.Confidence)
	}
}

func TestMatchFirstExclusionSkipsRuleNotScan(t *testing.T) {
	rules := compileRules(t, []PatternRule{
		{Pattern: `\bpipe\b`, Value: "spoon-pipe", Exclude: []string{`water`}},
		{Pattern: `\bpipe\b`, Value: "water-device"},
	})

	// The first rule matches but its exclusion fires; the scan must continue
	// to the second rule rather than abort.
	match, ok := MatchFirst("Water Pipe", rules)
	if !ok {
		t.Fatal("expected the scan to continue past the excluded rule")
	}
	if match.Value != "water-device" {
		t.Errorf("Value = %q, want %q", match.Value, "water-device")
	}
}

func TestMatchFirstCaseInsensitive(t *testing.T) {
	rules := compileRules(t, []PatternRule{
		{Pattern: `\bbong\b`, Value: "glass-bong", Exclude: []string{`silicone`}},
	})

	if _, ok := MatchFirst("BEAKER BONG", rules); !ok {
		t.Error("expected case-insensitive pattern match")
	}
	// Exclusions are case-insensitive too.
	if _, ok := MatchFirst("SILICONE BONG", rules); ok {
		t.Error("expected case-insensitive exclusion to fire")
	}
}

func TestMatchFirstNoMatch(t *testing.T) {
	rules := compileRules(t, []PatternRule{
		{Pattern: `grinder`, Value: "grinder"},
	})
	if match, ok := MatchFirst("Rolling Tray", rules); ok {
		t.Errorf("expected no match, got %+v", match)
	}
}

func TestMatchAll(t *testing.T) {
	rules := compileRules(t, []PatternRule{
		{Pattern: `quartz`, Value: "quartz", Confidence: ConfidenceHigh},
		{Pattern: `banger`, Value: "banger", Confidence: ConfidenceHigh},
		{Pattern: `silicone`, Value: "silicone", Confidence: ConfidenceHigh},
	})

	matches := MatchAll("Quartz Banger", rules)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Value != "quartz" || matches[1].Value != "banger" {
		t.Errorf("matches out of declared order: %+v", matches)
	}
}

func TestCompileDefaultsConfidence(t *testing.T) {
	r := PatternRule{Pattern: `bubbler`, Value: "bubbler"}
	if err := r.compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if r.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want medium default", r.Confidence)
	}
}

func TestCompileRejectsBadPattern(t *testing.T) {
	r := PatternRule{Pattern: `(`, Value: "broken"}
	if err := r.compile(); err == nil {
		t.Error("expected error for invalid regexp")
	}
	r = PatternRule{Pattern: `ok`, Value: "x", Exclude: []string{`(`}}
	if err := r.compile(); err == nil {
		t.Error("expected error for invalid exclusion regexp")
	}
}

func TestDefaultFamilyPatternOrdering(t *testing.T) {
	s := Default()

	tests := []struct {
		title string
		want  string
	}{
		{"18in Silicone Water Pipe", "silicone-bong"},
		{"Beaker Water Pipe", "glass-bong"},
		{"Classic Glass Bong", "glass-bong"},
		{"Silicone Bong 14in", "silicone-bong"},
		{"Sherlock Hand Pipe", "spoon-pipe"},
		{"Quartz Banger 14mm", "banger"},
		{"Electric Nectar Collector", "nectar-collector"},
		{"Mini Dab Rig", "dab-rig"},
	}

	for _, tt := range tests {
		match, ok := MatchFirst(tt.title, s.FamilyPatterns)
		if !ok {
			t.Errorf("%q: expected a family match", tt.title)
			continue
		}
		if match.Value != tt.want {
			t.Errorf("%q: family = %q, want %q", tt.title, match.Value, tt.want)
		}
	}
}
