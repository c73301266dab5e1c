package integrity

import (
	"github.com/mossgate/crosslink/internal/dataset"
)

// ForwardResult is the forward validator's output: findings plus the
// verified-edge multimap the backward validator consumes. Collecting the
// multimap here avoids a second full traversal of the dataset.
type ForwardResult struct {
	Findings []Finding
	// ByTarget maps a target entity id to every verified edge pointing at it.
	ByTarget map[string][]Edge
	// Verified counts edges whose target resolved and whose cached path, if
	// present, matched the target's canonical path.
	Verified int
}

// CheckForward validates every extracted edge against the index: the target
// must exist, and a cached path must equal the target's canonical path
// byte-for-byte. Duplicate edges to the same target from the same section
// are checked once and reported as duplicate-edge warnings.
func CheckForward(edges []Edge, idx *dataset.Index) ForwardResult {
	res := ForwardResult{ByTarget: make(map[string][]Edge)}

	type edgeKey struct {
		source, field, target string
	}
	seen := make(map[edgeKey]bool)

	for _, edge := range edges {
		key := edgeKey{edge.SourceID, edge.Field, edge.TargetID}
		if seen[key] {
			f := NewFinding(CatDuplicateEdge)
			f.SourceID = edge.SourceID
			f.Domain = edge.SourceDomain
			f.Field = edge.Field
			f.TargetID = edge.TargetID
			res.Findings = append(res.Findings, f)
			continue
		}
		seen[key] = true

		target := idx.Lookup(edge.TargetID)
		if target == nil {
			f := NewFinding(CatMissingTarget)
			f.SourceID = edge.SourceID
			f.Domain = edge.SourceDomain
			f.Field = edge.Field
			f.TargetID = edge.TargetID
			res.Findings = append(res.Findings, f)
			continue
		}

		if edge.URL != "" && edge.URL != target.CanonicalPath {
			f := NewFinding(CatPathMismatch)
			f.SourceID = edge.SourceID
			f.Domain = edge.SourceDomain
			f.Field = edge.Field
			f.TargetID = edge.TargetID
			f.Expected = target.CanonicalPath
			f.Actual = edge.URL
			res.Findings = append(res.Findings, f)
			continue
		}

		res.Verified++
		res.ByTarget[edge.TargetID] = append(res.ByTarget[edge.TargetID], edge)
	}

	return res
}
