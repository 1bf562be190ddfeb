/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"github.com/wynlabs/taxo/internal/schema"
	"github.com/wynlabs/taxo/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Predicate is a single namespace=value condition on a TagSet
type Predicate struct {
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
	Value     string `json:"value" yaml:"value" toml:"value"`
}

// Tag renders the predicate in tag form ("family:glass-bong").
func (p Predicate) Tag() string {
	return p.Namespace + ":" + p.Value
}

// holds reports whether the predicate is satisfied by the tag set.
func (p Predicate) holds(ts TagSet) bool {
	return ts.HasValue(p.Namespace, p.Value)
}

// IncompatibilityRule is a declarative cross-field constraint: when every
// condition predicate holds, Forbidden must be absent and Required present.
// Exactly one of Forbidden/Required is set per rule.
type IncompatibilityRule struct {
	Condition []Predicate `json:"condition" yaml:"condition" toml:"condition"`
	Forbidden *Predicate  `json:"forbidden,omitempty" yaml:"forbidden,omitempty" toml:"forbidden,omitempty"`
	Required  *Predicate  `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Severity  Severity    `json:"severity" yaml:"severity" toml:"severity"`
	Message   string      `json:"message" yaml:"message" toml:"message"`
}

// Schema is the immutable taxonomy configuration shared read-only across a
// batch run. It is always passed explicitly; there is no package-level schema.
type Schema struct {
	RequiredNamespaces    []string            `json:"required_namespaces" yaml:"required_namespaces" toml:"required_namespaces"`
	RecommendedNamespaces []string            `json:"recommended_namespaces" yaml:"recommended_namespaces" toml:"recommended_namespaces"`
	MultiValueNamespaces  []string            `json:"multi_value_namespaces" yaml:"multi_value_namespaces" toml:"multi_value_namespaces"`
	ValidValues           map[string][]string `json:"valid_values" yaml:"valid_values" toml:"valid_values"`
	FamilyToPillar        map[string]string   `json:"family_to_pillar" yaml:"family_to_pillar" toml:"family_to_pillar"`
	FamilyToUse           map[string]string   `json:"family_to_use" yaml:"family_to_use" toml:"family_to_use"`
	JointFamilies         []string            `json:"joint_families" yaml:"joint_families" toml:"joint_families"`

	IncompatibilityRules []IncompatibilityRule `json:"incompatibility_rules" yaml:"incompatibility_rules" toml:"incompatibility_rules"`
	TagCorrections       map[string]string     `json:"tag_corrections" yaml:"tag_corrections" toml:"tag_corrections"`
	LegacyTags           []string              `json:"legacy_tags" yaml:"legacy_tags" toml:"legacy_tags"`

	FamilyPatterns      []PatternRule `json:"family_patterns" yaml:"family_patterns" toml:"family_patterns"`
	MaterialPatterns    []PatternRule `json:"material_patterns" yaml:"material_patterns" toml:"material_patterns"`
	BrandPatterns       []PatternRule `json:"brand_patterns" yaml:"brand_patterns" toml:"brand_patterns"`
	JointSizePatterns   []PatternRule `json:"joint_size_patterns" yaml:"joint_size_patterns" toml:"joint_size_patterns"`
	JointGenderPatterns []PatternRule `json:"joint_gender_patterns" yaml:"joint_gender_patterns" toml:"joint_gender_patterns"`

	compiled bool
}

// Compile precompiles every pattern table. Must be called once before the
// schema is handed to Evaluate or PlanFix; Default() and LoadSchema() return
// compiled schemas.
func (s *Schema) Compile() error {
	tables := map[string][]PatternRule{
		"family_patterns":       s.FamilyPatterns,
		"material_patterns":     s.MaterialPatterns,
		"brand_patterns":        s.BrandPatterns,
		"joint_size_patterns":   s.JointSizePatterns,
		"joint_gender_patterns": s.JointGenderPatterns,
	}
	for name, rules := range tables {
		for i := range rules {
			if err := rules[i].compile(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	for i, rule := range s.IncompatibilityRules {
		if (rule.Forbidden == nil) == (rule.Required == nil) {
			return fmt.Errorf("incompatibility_rules[%d]: exactly one of forbidden or required must be set", i)
		}
		if rule.Severity == "" {
			s.IncompatibilityRules[i].Severity = SeverityWarning
		}
	}
	s.compiled = true
	return nil
}

// multiValue reports whether a namespace may legitimately hold several values.
func (s *Schema) multiValue(namespace string) bool {
	for _, ns := range s.MultiValueNamespaces {
		if ns == namespace {
			return true
		}
	}
	return false
}

// hasJoint reports whether the family carries joint specifications.
func (s *Schema) hasJoint(family string) bool {
	for _, f := range s.JointFamilies {
		if f == family {
			return true
		}
	}
	return false
}

// matchesLegacy reports whether a raw tag matches an entry in LegacyTags.
// Entries are matched exactly (case-insensitive), by "prefix*" glob, or by a
// full doublestar glob when the entry carries glob metacharacters.
func (s *Schema) matchesLegacy(tag string) bool {
	lower := strings.ToLower(tag)
	for _, entry := range s.LegacyTags {
		e := strings.ToLower(entry)
		if strings.ContainsAny(e, "*?[") {
			if ok, err := doublestar.Match(e, lower); err == nil && ok {
				return true
			}
			continue
		}
		if lower == e {
			return true
		}
	}
	return false
}

// LoadSchema reads a taxonomy file (YAML, TOML or JSON by extension),
// validates it against the embedded taxonomy JSON Schema, fills empty
// sections from the built-in defaults and compiles the result.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied config file
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	// Parse to a generic document first for schema validation
	var doc interface{}
	var unmarshal func([]byte, interface{}) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		unmarshal = func(b []byte, v interface{}) error { return toml.Unmarshal(b, v) }
	case ".json":
		unmarshal = func(b []byte, v interface{}) error { return json.Unmarshal(b, v) }
	default: // .yaml / .yml
		unmarshal = func(b []byte, v interface{}) error { return yaml.Unmarshal(b, v) }
	}
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	valResult, err := schema.Validate(doc, "taxonomy-v1.0.0")
	if err != nil {
		return nil, fmt.Errorf("taxonomy schema validation setup failed: %w", err)
	}
	if !valResult.Valid {
		for _, ve := range valResult.Errors {
			logger.Error(fmt.Sprintf("taxonomy config: %s: %s", ve.Path, ve.Message))
		}
		return nil, fmt.Errorf("taxonomy file %s failed validation with %d errors", path, len(valResult.Errors))
	}

	var fileSchema Schema
	if err := unmarshal(data, &fileSchema); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy file: %w", err)
	}

	merged := mergeWithDefaults(fileSchema)
	if err := merged.Compile(); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeWithDefaults fills sections the file left empty from the built-in
// taxonomy. A file that specifies a section owns it entirely.
func mergeWithDefaults(fileSchema Schema) *Schema {
	def := defaultSchema()
	merged := fileSchema

	if len(merged.RequiredNamespaces) == 0 {
		merged.RequiredNamespaces = def.RequiredNamespaces
	}
	if len(merged.RecommendedNamespaces) == 0 {
		merged.RecommendedNamespaces = def.RecommendedNamespaces
	}
	if len(merged.MultiValueNamespaces) == 0 {
		merged.MultiValueNamespaces = def.MultiValueNamespaces
	}
	if len(merged.ValidValues) == 0 {
		merged.ValidValues = def.ValidValues
	}
	if len(merged.FamilyToPillar) == 0 {
		merged.FamilyToPillar = def.FamilyToPillar
	}
	if len(merged.FamilyToUse) == 0 {
		merged.FamilyToUse = def.FamilyToUse
	}
	if len(merged.JointFamilies) == 0 {
		merged.JointFamilies = def.JointFamilies
	}
	if len(merged.IncompatibilityRules) == 0 {
		merged.IncompatibilityRules = def.IncompatibilityRules
	}
	if len(merged.TagCorrections) == 0 {
		merged.TagCorrections = def.TagCorrections
	}
	if len(merged.LegacyTags) == 0 {
		merged.LegacyTags = def.LegacyTags
	}
	if len(merged.FamilyPatterns) == 0 {
		merged.FamilyPatterns = def.FamilyPatterns
	}
	if len(merged.MaterialPatterns) == 0 {
		merged.MaterialPatterns = def.MaterialPatterns
	}
	if len(merged.BrandPatterns) == 0 {
		merged.BrandPatterns = def.BrandPatterns
	}
	if len(merged.JointSizePatterns) == 0 {
		merged.JointSizePatterns = def.JointSizePatterns
	}
	if len(merged.JointGenderPatterns) == 0 {
		merged.JointGenderPatterns = def.JointGenderPatterns
	}
	return &merged
}

// Default returns the compiled built-in smoke-shop taxonomy.
func Default() *Schema {
	s := defaultSchema()
	if err := s.Compile(); err != nil {
		// Built-in tables are covered by tests; a compile failure here is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("built-in taxonomy failed to compile: %v", err))
	}
	return &s
}
