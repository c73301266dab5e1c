package integrity

import (
	"fmt"
	"strings"
)

// requiredEdgeKeys are the keys every edge item must carry with non-empty
// string values. name is the optional cached display field.
var requiredEdgeKeys = []string{"targetId", "url"}

// CheckStructural validates shape only, independent of index lookups: every
// malformed node surfaced by the extractor becomes a structural error, every
// extracted edge must carry its required keys with the right types, and
// section names must follow the lowerCamelCase convention (legacy variants
// are a naming warning, not an error). It runs before the link validators so
// malformed data never reaches graph traversal.
func CheckStructural(ex Extraction, sourceID, domain string) []Finding {
	var findings []Finding

	for _, m := range ex.Malformed {
		f := NewFinding(CatStructural)
		f.SourceID = sourceID
		f.Domain = domain
		f.Field = m.Field
		f.Detail = m.Reason
		if m.Field == "" {
			f.Detail = fmt.Sprintf("category %q: %s", m.Category, m.Reason)
		}
		findings = append(findings, f)
	}

	for _, edge := range ex.Edges {
		findings = append(findings, checkEdgeShape(edge)...)
	}

	seen := make(map[string]bool)
	for _, field := range ex.Sections {
		if seen[field] {
			continue
		}
		seen[field] = true
		if !isCamelCase(field) {
			f := NewFinding(CatNaming)
			f.SourceID = sourceID
			f.Domain = domain
			f.Field = field
			f.Detail = fmt.Sprintf("section %q does not follow lowerCamelCase naming", field)
			findings = append(findings, f)
		}
	}

	return findings
}

// checkEdgeShape verifies required keys are present, non-empty strings and
// that the optional name field is a string when set.
func checkEdgeShape(edge Edge) []Finding {
	var findings []Finding

	for _, key := range requiredEdgeKeys {
		v, ok := edge.Raw[key]
		if !ok {
			findings = append(findings, edgeShapeFinding(edge, fmt.Sprintf("missing required key %q", key)))
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			findings = append(findings, edgeShapeFinding(edge, fmt.Sprintf("key %q is %s, want string", key, typeName(v))))
			continue
		}
		if s == "" {
			findings = append(findings, edgeShapeFinding(edge, fmt.Sprintf("key %q is empty", key)))
		}
	}

	if v, ok := edge.Raw["name"]; ok {
		if _, isStr := v.(string); !isStr {
			findings = append(findings, edgeShapeFinding(edge, fmt.Sprintf("key %q is %s, want string", "name", typeName(v))))
		}
	}

	return findings
}

func edgeShapeFinding(edge Edge, detail string) Finding {
	f := NewFinding(CatStructural)
	f.SourceID = edge.SourceID
	f.Domain = edge.SourceDomain
	f.Field = edge.Field
	f.TargetID = edge.TargetID
	f.Detail = detail
	return f
}

// isCamelCase reports whether a section name is lowerCamelCase: a lowercase
// first letter and no separators. Legacy snake_case and kebab-case section
// names still resolve, they just get flagged.
func isCamelCase(s string) bool {
	if s == "" {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	return !strings.ContainsAny(s, "_- ")
}
