/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

// Facet namespaces recognized by the built-in taxonomy.
const (
	NamespaceFamily      = "family"
	NamespacePillar      = "pillar"
	NamespaceUse         = "use"
	NamespaceMaterial    = "material"
	NamespaceBrand       = "brand"
	NamespaceStyle       = "style"
	NamespaceVendor      = "vendor"
	NamespaceSKU         = "sku"
	NamespaceJointSize   = "joint-size"
	NamespaceJointGender = "joint-gender"
)

// defaultSchema carries the built-in smoke-shop taxonomy. Pattern order
// matters: specific rules ("water pipe", silicone variants) precede generics
// ("pipe", "bong").
func defaultSchema() Schema {
	return Schema{
		RequiredNamespaces:    []string{NamespaceFamily, NamespacePillar},
		RecommendedNamespaces: []string{NamespaceUse, NamespaceMaterial},
		MultiValueNamespaces:  []string{NamespaceStyle, NamespaceBrand},

		ValidValues: map[string][]string{
			NamespacePillar: {"smokeshop-device", "accessory"},
			NamespaceFamily: {
				"glass-bong", "silicone-bong", "spoon-pipe", "bubbler", "dab-rig",
				"nectar-collector", "dab-tool", "banger", "carb-cap", "flower-bowl",
				"downstem", "vape-battery", "grinder", "rolling-tray", "storage-accessory",
			},
			NamespaceUse:         {"flower-smoking", "dabbing", "vaping", "rolling", "storage"},
			NamespaceMaterial:    {"glass", "silicone", "quartz", "titanium", "ceramic", "metal", "wood", "plastic", "pvc"},
			NamespaceJointSize:   {"10mm", "14mm", "18mm"},
			NamespaceJointGender: {"male", "female"},
		},

		FamilyToPillar: map[string]string{
			"glass-bong":        "smokeshop-device",
			"silicone-bong":     "smokeshop-device",
			"spoon-pipe":        "smokeshop-device",
			"bubbler":           "smokeshop-device",
			"dab-rig":           "smokeshop-device",
			"nectar-collector":  "smokeshop-device",
			"vape-battery":      "smokeshop-device",
			"dab-tool":          "accessory",
			"banger":            "accessory",
			"carb-cap":          "accessory",
			"flower-bowl":       "accessory",
			"downstem":          "accessory",
			"grinder":           "accessory",
			"rolling-tray":      "accessory",
			"storage-accessory": "accessory",
		},

		// Partial: families without a dominant use (downstem, grinder) are
		// deliberately unmapped.
		FamilyToUse: map[string]string{
			"glass-bong":        "flower-smoking",
			"silicone-bong":     "flower-smoking",
			"spoon-pipe":        "flower-smoking",
			"bubbler":           "flower-smoking",
			"flower-bowl":       "flower-smoking",
			"dab-rig":           "dabbing",
			"nectar-collector":  "dabbing",
			"dab-tool":          "dabbing",
			"banger":            "dabbing",
			"carb-cap":          "dabbing",
			"vape-battery":      "vaping",
			"rolling-tray":      "rolling",
			"storage-accessory": "storage",
		},

		JointFamilies: []string{"glass-bong", "silicone-bong", "dab-rig", "bubbler", "flower-bowl", "banger", "downstem"},

		IncompatibilityRules: []IncompatibilityRule{
			{
				Condition: []Predicate{{NamespaceFamily, "glass-bong"}},
				Forbidden: &Predicate{NamespaceMaterial, "silicone"},
				Severity:  SeverityWarning,
				Message:   "glass-bong items should not carry material:silicone; use family:silicone-bong instead",
			},
			{
				Condition: []Predicate{{NamespaceFamily, "silicone-bong"}},
				Forbidden: &Predicate{NamespaceMaterial, "glass"},
				Severity:  SeverityWarning,
				Message:   "silicone-bong items should not carry material:glass; use family:glass-bong instead",
			},
			{
				Condition: []Predicate{{NamespaceFamily, "banger"}},
				Required:  &Predicate{NamespaceUse, "dabbing"},
				Severity:  SeverityError,
				Message:   "bangers are dab accessories and require use:dabbing",
			},
			{
				Condition: []Predicate{{NamespaceFamily, "carb-cap"}},
				Required:  &Predicate{NamespaceUse, "dabbing"},
				Severity:  SeverityError,
				Message:   "carb caps are dab accessories and require use:dabbing",
			},
			{
				Condition: []Predicate{{NamespaceFamily, "vape-battery"}},
				Forbidden: &Predicate{NamespaceUse, "flower-smoking"},
				Severity:  SeverityError,
				Message:   "vape batteries cannot be tagged use:flower-smoking",
			},
			{
				Condition: []Predicate{{NamespaceFamily, "banger"}, {NamespaceMaterial, "silicone"}},
				Forbidden: &Predicate{NamespaceMaterial, "silicone"},
				Severity:  SeverityError,
				Message:   "bangers take heat; silicone is not a valid banger material",
			},
		},

		TagCorrections: map[string]string{
			"family:bong":           "family:glass-bong",
			"family:pipe":           "family:spoon-pipe",
			"family:bowl":           "family:flower-bowl",
			"family:battery":        "family:vape-battery",
			"family:ashtray":        "family:storage-accessory",
			"family:rig":            "family:dab-rig",
			"pillar:device":         "pillar:smokeshop-device",
			"pillar:accessories":    "pillar:accessory",
			"use:smoking":           "use:flower-smoking",
			"use:dab":               "use:dabbing",
			"material:boro":         "material:glass",
			"material:borosilicate": "material:glass",
			"material:quartz-glass": "material:quartz",
			"joint-size:14.5mm":     "joint-size:14mm",
			"joint-size:18.8mm":     "joint-size:18mm",
			"joint-gender:f":        "joint-gender:female",
			"joint-gender:m":        "joint-gender:male",
		},

		// Bare capitalized category tags and importer leftovers from the old
		// tagging scripts. Glob entries match whole raw tags.
		LegacyTags: []string{
			"Bong", "Pipe", "Bowl", "Rig", "Dab", "New", "Sale", "New Arrival",
			"wholesale", "wholesale-*", "import-*", "yhs-*", "temp-*",
		},

		FamilyPatterns: []PatternRule{
			{Pattern: `silicone.*(bong|water\s?pipe)|(bong|water\s?pipe).*silicone`, Value: "silicone-bong", Confidence: ConfidenceHigh},
			{Pattern: `water\s?pipe`, Value: "glass-bong", Confidence: ConfidenceHigh, Exclude: []string{`silicone`}},
			{Pattern: `\bbong\b`, Value: "glass-bong", Confidence: ConfidenceHigh, Exclude: []string{`silicone`}},
			{Pattern: `nectar\s?collector`, Value: "nectar-collector", Confidence: ConfidenceHigh},
			{Pattern: `dab\s?rig|\brig\b`, Value: "dab-rig", Confidence: ConfidenceHigh, Exclude: []string{`rigid`}},
			{Pattern: `bubbler`, Value: "bubbler", Confidence: ConfidenceHigh},
			{Pattern: `banger`, Value: "banger", Confidence: ConfidenceHigh},
			{Pattern: `carb\s?cap`, Value: "carb-cap", Confidence: ConfidenceHigh},
			{Pattern: `downstem`, Value: "downstem", Confidence: ConfidenceHigh},
			{Pattern: `hand\s?pipe|spoon\s?pipe|glass\s?pipe|sherlock`, Value: "spoon-pipe", Confidence: ConfidenceHigh, Exclude: []string{`water\s?pipe`}},
			{Pattern: `dab(ber)?\s?tool|dabber`, Value: "dab-tool", Confidence: ConfidenceMedium},
			{Pattern: `\bbattery\b|510\s?thread`, Value: "vape-battery", Confidence: ConfidenceMedium},
			{Pattern: `\bbowl\b|\bslide\b`, Value: "flower-bowl", Confidence: ConfidenceMedium},
			{Pattern: `grinder`, Value: "grinder", Confidence: ConfidenceHigh},
			{Pattern: `rolling\s?tray`, Value: "rolling-tray", Confidence: ConfidenceHigh},
			{Pattern: `ashtray|stash\s?jar|\bjar\b`, Value: "storage-accessory", Confidence: ConfidenceMedium},
			{Pattern: `\bpipe\b`, Value: "spoon-pipe", Confidence: ConfidenceMedium, Exclude: []string{`water\s?pipe`}},
		},

		MaterialPatterns: []PatternRule{
			{Pattern: `quartz`, Value: "quartz", Confidence: ConfidenceHigh},
			{Pattern: `titanium`, Value: "titanium", Confidence: ConfidenceHigh},
			{Pattern: `silicone`, Value: "silicone", Confidence: ConfidenceHigh},
			{Pattern: `borosilicate|\bglass\b`, Value: "glass", Confidence: ConfidenceHigh},
			{Pattern: `ceramic`, Value: "ceramic", Confidence: ConfidenceHigh},
			{Pattern: `\bwood(en)?\b|bamboo`, Value: "wood", Confidence: ConfidenceMedium},
			{Pattern: `stainless|aluminum|\bmetal\b|\bbrass\b`, Value: "metal", Confidence: ConfidenceMedium},
			{Pattern: `acrylic|plastic`, Value: "plastic", Confidence: ConfidenceMedium},
		},

		BrandPatterns: []PatternRule{
			{Pattern: `\braw\b`, Value: "raw", Confidence: ConfidenceHigh, Exclude: []string{`raw\s?material`}},
			{Pattern: `puffco`, Value: "puffco", Confidence: ConfidenceHigh},
			{Pattern: `yocan`, Value: "yocan", Confidence: ConfidenceHigh},
			{Pattern: `lookah`, Value: "lookah", Confidence: ConfidenceHigh},
			{Pattern: `zig.?zag`, Value: "zig-zag", Confidence: ConfidenceHigh},
			{Pattern: `elements`, Value: "elements", Confidence: ConfidenceMedium},
			{Pattern: `clipper`, Value: "clipper", Confidence: ConfidenceMedium},
		},

		JointSizePatterns: []PatternRule{
			{Pattern: `10\s?mm`, Value: "10mm", Confidence: ConfidenceHigh},
			{Pattern: `14(\.5)?\s?mm`, Value: "14mm", Confidence: ConfidenceHigh},
			{Pattern: `18(\.8)?\s?mm`, Value: "18mm", Confidence: ConfidenceHigh},
		},

		JointGenderPatterns: []PatternRule{
			{Pattern: `\bfemale\b`, Value: "female", Confidence: ConfidenceHigh},
			{Pattern: `\bmale\b`, Value: "male", Confidence: ConfidenceHigh, Exclude: []string{`female`}},
		},
	}
}
