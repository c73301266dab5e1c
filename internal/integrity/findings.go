package integrity

import "fmt"

// Severity classifies a finding for exit-code purposes. Only error-severity
// findings fail a run; warnings are surfaced for triage and never change the
// exit status.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category is the machine-readable bucket a finding is aggregated under.
type Category string

const (
	// CatLoad: a domain file could not be read or parsed.
	CatLoad Category = "load"
	// CatDuplicateID: one id claimed by two domains.
	CatDuplicateID Category = "duplicate_id"
	// CatMissingTarget: forward reference to a nonexistent entity.
	CatMissingTarget Category = "missing_target"
	// CatPathMismatch: cached forward path is stale.
	CatPathMismatch Category = "path_mismatch"
	// CatMissingBacklink: a mapped relation has no reverse edge.
	CatMissingBacklink Category = "missing_backlink"
	// CatBacklinkMismatch: the reverse edge exists but its cached path is stale.
	CatBacklinkMismatch Category = "backlink_mismatch"
	// CatDuplicateEdge: the same target referenced twice from one section.
	CatDuplicateEdge Category = "duplicate_edge"
	// CatDuplicateBacklink: more than one candidate reverse edge.
	CatDuplicateBacklink Category = "duplicate_backlink"
	// CatStructural: an edge or section violates the required shape.
	CatStructural Category = "structural"
	// CatNaming: a section name uses a legacy naming variant.
	CatNaming Category = "naming"
	// CatOrphan: an entity with no relationships at all.
	CatOrphan Category = "orphan"
)

// severityOf fixes each category's severity. Some relations are curated
// one-directionally during data entry, so a missing backlink is a warning
// while a stale backlink path is an error.
var severityOf = map[Category]Severity{
	CatLoad:              SeverityError,
	CatDuplicateID:       SeverityError,
	CatMissingTarget:     SeverityError,
	CatPathMismatch:      SeverityError,
	CatMissingBacklink:   SeverityWarning,
	CatBacklinkMismatch:  SeverityError,
	CatDuplicateEdge:     SeverityWarning,
	CatDuplicateBacklink: SeverityWarning,
	CatStructural:        SeverityError,
	CatNaming:            SeverityWarning,
	CatOrphan:            SeverityWarning,
}

// Finding records one integrity problem with enough context to locate the
// offending edge. Validators accumulate findings and never abort the run.
type Finding struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	SourceID string   `json:"source_id,omitempty"`
	Domain   string   `json:"domain,omitempty"`
	Field    string   `json:"field,omitempty"`
	TargetID string   `json:"target_id,omitempty"`
	Expected string   `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
	Detail   string   `json:"detail,omitempty"`
}

// NewFinding builds a finding with the category's fixed severity.
func NewFinding(cat Category) Finding {
	return Finding{Category: cat, Severity: severityOf[cat]}
}

// IsError reports whether the finding fails the run.
func (f Finding) IsError() bool {
	return f.Severity == SeverityError
}

// String renders one human-readable report line for the finding.
func (f Finding) String() string {
	loc := f.SourceID
	if f.Field != "" {
		loc += "." + f.Field
	}
	switch f.Category {
	case CatMissingTarget:
		return fmt.Sprintf("%s → %q: target does not exist in any domain", loc, f.TargetID)
	case CatPathMismatch:
		return fmt.Sprintf("%s → %q: cached path %q, canonical %q", loc, f.TargetID, f.Actual, f.Expected)
	case CatMissingBacklink:
		return fmt.Sprintf("%s → %q: no %q edge back to %q", loc, f.TargetID, f.Detail, f.SourceID)
	case CatBacklinkMismatch:
		return fmt.Sprintf("%s → %q: backlink cached path %q, canonical %q", loc, f.TargetID, f.Actual, f.Expected)
	case CatDuplicateEdge:
		return fmt.Sprintf("%s: duplicate edge to %q", loc, f.TargetID)
	case CatDuplicateBacklink:
		return fmt.Sprintf("%s → %q: more than one reverse edge matches", loc, f.TargetID)
	case CatDuplicateID:
		return fmt.Sprintf("%q: %s", f.SourceID, f.Detail)
	case CatOrphan:
		return fmt.Sprintf("%s: entity has no relationships", f.SourceID)
	case CatLoad:
		return fmt.Sprintf("%s: %s", f.Domain, f.Detail)
	default:
		if f.Detail != "" {
			return fmt.Sprintf("%s: %s", loc, f.Detail)
		}
		return loc
	}
}
