/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wynlabs/taxo/internal/catalog"
)

func planFor(item catalog.Item, opts FixOptions) (FixPlan, TagSet) {
	ts := Parse(item.TagString)
	return PlanFix(item, ts, Default(), opts), ts
}

func addedTags(plan FixPlan) []string {
	var tags []string
	for _, a := range plan.AddTags {
		tags = append(tags, a.Tag)
	}
	return tags
}

func TestPlanFixInfersFacetsFromTitle(t *testing.T) {
	item := catalog.Item{ID: "gid://1", Title: "18in Silicone Water Pipe", TagString: ""}
	plan, _ := planFor(item, FixOptions{})

	want := []string{
		"family:silicone-bong",
		"material:silicone",
		"pillar:smokeshop-device",
		"use:flower-smoking",
	}
	if got := addedTags(plan); !reflect.DeepEqual(got, want) {
		t.Errorf("AddTags = %v, want %v", got, want)
	}
	if len(plan.RemoveTags) != 0 || len(plan.CorrectTags) != 0 {
		t.Errorf("expected additions only, got %+v", plan)
	}
}

func TestPlanFixCorrectionsAndRemovals(t *testing.T) {
	item := catalog.Item{
		ID:        "gid://2",
		Title:     "Beaker Bong",
		TagString: "Bong, wholesale-glass, family:bong, pillar:smokeshop-device",
	}
	plan, ts := planFor(item, FixOptions{})

	if len(plan.CorrectTags) != 1 || plan.CorrectTags[0].From != "family:bong" || plan.CorrectTags[0].To != "family:glass-bong" {
		t.Errorf("CorrectTags = %+v", plan.CorrectTags)
	}
	if len(plan.RemoveTags) != 2 {
		t.Fatalf("RemoveTags = %+v, want Bong and wholesale-glass", plan.RemoveTags)
	}

	// Deterministic mappings key on the corrected family.
	if got := addedTags(plan); !reflect.DeepEqual(got, []string{"use:flower-smoking"}) {
		t.Errorf("AddTags = %v, want [use:flower-smoking]", got)
	}

	newTags := Apply(ts, plan)
	want := []string{"family:glass-bong", "pillar:smokeshop-device", "use:flower-smoking"}
	if !reflect.DeepEqual(newTags, want) {
		t.Errorf("Apply = %v, want %v", newTags, want)
	}
}

func TestPlanFixRequiredCombination(t *testing.T) {
	item := catalog.Item{
		ID:        "gid://3",
		Title:     "Quartz Banger",
		TagString: "family:banger, pillar:accessory",
	}
	plan, _ := planFor(item, FixOptions{})

	want := []string{"material:quartz", "use:dabbing"}
	if got := addedTags(plan); !reflect.DeepEqual(got, want) {
		t.Errorf("AddTags = %v, want %v", got, want)
	}
}

func TestPlanFixHighConfidenceOnly(t *testing.T) {
	// "Slide Bowl" only matches the medium-confidence flower-bowl rule, so the
	// family inference (and the mappings hanging off it) must be suppressed.
	item := catalog.Item{ID: "gid://4", Title: "Glass Slide Bowl", TagString: ""}
	plan, _ := planFor(item, FixOptions{OnlyHighConfidence: true})

	if got := addedTags(plan); !reflect.DeepEqual(got, []string{"material:glass"}) {
		t.Errorf("AddTags = %v, want [material:glass]", got)
	}

	// Without the gate the medium inference lands along with its mappings.
	plan, _ = planFor(item, FixOptions{})
	want := []string{"family:flower-bowl", "material:glass", "pillar:accessory", "use:flower-smoking"}
	if got := addedTags(plan); !reflect.DeepEqual(got, want) {
		t.Errorf("AddTags = %v, want %v", got, want)
	}
}

func TestApplyOrderingAndDedup(t *testing.T) {
	ts := Parse("Bong, family:bong, material:glass, material:glass")
	plan := FixPlan{
		AddTags: []TagAddition{
			{Tag: "material:glass"},
			{Tag: "pillar:smokeshop-device"},
		},
		RemoveTags:  []TagRemoval{{Tag: "Bong"}},
		CorrectTags: []TagCorrection{{From: "family:bong", To: "family:glass-bong"}},
	}

	got := Apply(ts, plan)
	want := []string{"family:glass-bong", "material:glass", "pillar:smokeshop-device"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestFixIdempotence(t *testing.T) {
	items := []catalog.Item{
		{ID: "a", Title: "18in Silicone Water Pipe", TagString: ""},
		{ID: "b", Title: "Beaker Bong", TagString: "family:bong"},
		{ID: "c", Title: "Glass Beaker Bong 14mm Female", TagString: "Bong, wholesale-glass, family:glass-bong, pillar:smokeshop-device, use:flower-smoking, material:glass"},
		{ID: "d", Title: "Quartz Banger", TagString: "family:banger, pillar:accessory, use:dabbing, material:quartz, joint-size:14.5mm"},
		{ID: "e", Title: "Mystery Widget", TagString: "vendor:acme"},
	}
	s := Default()

	for _, item := range items {
		t.Run(item.ID, func(t *testing.T) {
			ts := Parse(item.TagString)
			plan := PlanFix(item, ts, s, FixOptions{})
			newTags := Apply(ts, plan)

			fixed := Parse(strings.Join(newTags, ", "))
			again := PlanFix(item, fixed, s, FixOptions{})
			if !again.Empty() {
				t.Errorf("second plan not empty: %+v (tags after first apply: %v)", again, newTags)
			}
			if !reflect.DeepEqual(Apply(fixed, again), newTags) {
				t.Errorf("second apply changed tags: %v", Apply(fixed, again))
			}
		})
	}
}

func TestFixThenValidateClearsErrors(t *testing.T) {
	item := catalog.Item{ID: "gid://5", Title: "18in Silicone Water Pipe", TagString: ""}
	s := Default()

	ts := Parse(item.TagString)
	plan := PlanFix(item, ts, s, FixOptions{})
	fixed := Parse(strings.Join(Apply(ts, plan), ", "))

	for _, is := range Evaluate(item, fixed, s) {
		if is.Severity == SeverityError {
			t.Errorf("error-severity issue survived the fix: %+v", is)
		}
	}
}
