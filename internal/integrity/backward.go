package integrity

import (
	"sort"

	"github.com/mossgate/crosslink/internal/dataset"
)

// BackwardChecker verifies that every verified forward edge whose field is
// declared bidirectional has a matching reverse edge with a fresh cached
// path. The relation map is injected so tests can substitute alternate
// tables.
type BackwardChecker struct {
	idx       *dataset.Index
	relations RelationMap

	// extractions caches each target entity's extracted edges; a popular
	// target is traversed once, not once per inbound edge.
	extractions map[string][]Edge
}

// NewBackwardChecker builds a checker over an already-built index.
func NewBackwardChecker(idx *dataset.Index, relations RelationMap) *BackwardChecker {
	return &BackwardChecker{
		idx:         idx,
		relations:   relations,
		extractions: make(map[string][]Edge),
	}
}

// Check consumes the forward validator's verified-edge multimap. Every
// mapped edge produces exactly one outcome: a matching reverse edge (clean
// or path-mismatched) or a missing-backlink warning. Extra matching reverse
// edges beyond the first are duplicate-backlink warnings; the first match is
// the one validated.
func (c *BackwardChecker) Check(byTarget map[string][]Edge) []Finding {
	var findings []Finding

	targets := make([]string, 0, len(byTarget))
	for id := range byTarget {
		targets = append(targets, id)
	}
	sort.Strings(targets)

	for _, targetID := range targets {
		for _, edge := range byTarget[targetID] {
			reverseField, mapped := c.relations.Reverse(edge.Field)
			if !mapped {
				continue // documented one-directional relation
			}
			findings = append(findings, c.checkBacklink(edge, reverseField)...)
		}
	}

	return findings
}

func (c *BackwardChecker) checkBacklink(edge Edge, reverseField string) []Finding {
	source := c.idx.Lookup(edge.SourceID)
	if source == nil {
		// A verified edge always has an indexed source; nothing to compare
		// against if the filter removed it.
		return nil
	}

	var matches []Edge
	for _, rev := range c.targetEdges(edge.TargetID) {
		if rev.Field == reverseField && rev.TargetID == edge.SourceID {
			matches = append(matches, rev)
		}
	}

	if len(matches) == 0 {
		f := NewFinding(CatMissingBacklink)
		f.SourceID = edge.SourceID
		f.Domain = edge.SourceDomain
		f.Field = edge.Field
		f.TargetID = edge.TargetID
		f.Detail = reverseField
		return []Finding{f}
	}

	var findings []Finding

	// Tie-break: validate against the first match, flag the rest.
	first := matches[0]
	if first.URL != source.CanonicalPath {
		f := NewFinding(CatBacklinkMismatch)
		f.SourceID = edge.SourceID
		f.Domain = edge.SourceDomain
		f.Field = reverseField
		f.TargetID = edge.TargetID
		f.Expected = source.CanonicalPath
		f.Actual = first.URL
		findings = append(findings, f)
	}

	for range matches[1:] {
		f := NewFinding(CatDuplicateBacklink)
		f.SourceID = edge.SourceID
		f.Domain = edge.SourceDomain
		f.Field = reverseField
		f.TargetID = edge.TargetID
		findings = append(findings, f)
	}

	return findings
}

// targetEdges returns the target entity's own extracted edges, cached per id.
func (c *BackwardChecker) targetEdges(id string) []Edge {
	if edges, ok := c.extractions[id]; ok {
		return edges
	}
	entry := c.idx.Lookup(id)
	if entry == nil {
		c.extractions[id] = nil
		return nil
	}
	edges := ExtractEdges(entry.Entity).Edges
	c.extractions[id] = edges
	return edges
}
