/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantRaw      []string
		wantNS       map[string][]string
		wantUnnamesp []string
	}{
		{
			name:    "empty string",
			input:   "",
			wantRaw: nil,
			wantNS:  map[string][]string{},
		},
		{
			name:    "only separators and whitespace",
			input:   " , ,  ,",
			wantRaw: nil,
			wantNS:  map[string][]string{},
		},
		{
			name:    "mixed namespaced and bare tags",
			input:   "family:glass-bong, Bong , material:glass",
			wantRaw: []string{"family:glass-bong", "Bong", "material:glass"},
			wantNS: map[string][]string{
				"family":   {"glass-bong"},
				"material": {"glass"},
			},
			wantUnnamesp: []string{"Bong"},
		},
		{
			name:    "repeated namespace preserves order",
			input:   "style:beaker, style:straight",
			wantRaw: []string{"style:beaker", "style:straight"},
			wantNS:  map[string][]string{"style": {"beaker", "straight"}},
		},
		{
			name:    "only first colon separates namespace",
			input:   "note:ratio 14:18",
			wantRaw: []string{"note:ratio 14:18"},
			wantNS:  map[string][]string{"note": {"ratio 14:18"}},
		},
		{
			name:    "trailing colon yields empty value",
			input:   "family:",
			wantRaw: []string{"family:"},
			wantNS:  map[string][]string{"family": {""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := Parse(tt.input)
			if !reflect.DeepEqual(ts.Raw, tt.wantRaw) {
				t.Errorf("Raw = %v, want %v", ts.Raw, tt.wantRaw)
			}
			if !reflect.DeepEqual(ts.Namespaced, tt.wantNS) {
				t.Errorf("Namespaced = %v, want %v", ts.Namespaced, tt.wantNS)
			}
			if !reflect.DeepEqual(ts.Unnamespaced, tt.wantUnnamesp) {
				t.Errorf("Unnamespaced = %v, want %v", ts.Unnamespaced, tt.wantUnnamesp)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	input := "  family:glass-bong ,Bong,  material:glass  "
	got := Parse(input).Serialize()
	want := "family:glass-bong, Bong, material:glass"
	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	// A normalized string parses back to the same raw tags.
	again := Parse(got).Serialize()
	if again != want {
		t.Errorf("second round trip = %q, want %q", again, want)
	}
}

func TestTagSetAccessors(t *testing.T) {
	ts := Parse("family:glass-bong, style:beaker, style:straight")

	if !ts.Has("family") {
		t.Error("Has(family) = false, want true")
	}
	if ts.Has("material") {
		t.Error("Has(material) = true, want false")
	}
	if got := ts.First("style"); got != "beaker" {
		t.Errorf("First(style) = %q, want %q", got, "beaker")
	}
	if got := ts.First("use"); got != "" {
		t.Errorf("First(use) = %q, want empty", got)
	}
	if !ts.HasValue("style", "straight") {
		t.Error("HasValue(style, straight) = false, want true")
	}
	if ts.HasValue("family", "bubbler") {
		t.Error("HasValue(family, bubbler) = true, want false")
	}
}
