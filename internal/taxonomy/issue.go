/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

// Severity represents the severity level of a taxonomy issue
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Rank returns a numeric rank for severity comparison (higher is more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeveritySuggestion:
		return 1
	default:
		return 0
	}
}

// IssueType identifies the validation pass that produced an issue
type IssueType string

const (
	IssueMissingRequiredTag         IssueType = "missing_required_tag"
	IssueMissingRecommendedTag      IssueType = "missing_recommended_tag"
	IssueInvalidTagValue            IssueType = "invalid_tag_value"
	IssueInconsistentFamilyPillar   IssueType = "inconsistent_family_pillar"
	IssueInconsistentFamilyUse      IssueType = "inconsistent_family_use"
	IssueIncompatibleTags           IssueType = "incompatible_tags"
	IssueMissingRequiredCombination IssueType = "missing_required_combination"
	IssueTitleFamilyMismatch        IssueType = "title_family_mismatch"
	IssueSuggestedFamily            IssueType = "suggested_family"
	IssueMissingMaterial            IssueType = "missing_material"
	IssueMissingBrand               IssueType = "missing_brand"
	IssueDuplicateNamespace         IssueType = "duplicate_namespace"
	IssueOrphanedTag                IssueType = "orphaned_tag"
	IssueMissingJointSize           IssueType = "missing_joint_size"
	IssueMissingJointGender         IssueType = "missing_joint_gender"
)

// Issue represents a single taxonomy finding for one catalog item.
// Issues are immutable once emitted.
type Issue struct {
	ItemID     string    `json:"item_id"`
	Type       IssueType `json:"type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
}
