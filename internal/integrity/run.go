package integrity

import (
	"fmt"

	"github.com/mossgate/crosslink/internal/dataset"
)

// Options configures one validation run.
type Options struct {
	// Domain restricts which entities' outgoing edges are validated. The
	// index is always built from every domain so cross-domain targets still
	// resolve. Empty means all domains.
	Domain string
	// Relations is the forward → reverse field table for backward checks.
	Relations RelationMap
}

// Result carries everything the report aggregator needs from one run.
type Result struct {
	Findings        []Finding
	Files           []string
	EntitiesScanned int
	EntitiesLoaded  map[string]int // per domain, for the report header
	EdgesScanned    int
	VerifiedForward int
}

// Run executes the full pipeline over an already-loaded dataset:
// index build → per-entity extraction and structural checks → forward link
// checks → backward link checks. Every validator accumulates findings; no
// data problem aborts the run.
func Run(ds *dataset.Dataset, idx *dataset.Index, opts Options) *Result {
	res := &Result{
		Files:          ds.Files,
		EntitiesLoaded: make(map[string]int, len(ds.Collections)),
	}
	for domain, coll := range ds.Collections {
		res.EntitiesLoaded[domain] = len(coll)
	}

	for _, lf := range ds.Failures {
		f := NewFinding(CatLoad)
		f.Domain = lf.Domain
		f.Detail = fmt.Sprintf("%s could not be loaded: %v", lf.File, lf.Err)
		res.Findings = append(res.Findings, f)
	}

	for _, dup := range idx.Duplicates() {
		f := NewFinding(CatDuplicateID)
		f.SourceID = dup.ID
		f.Domain = dup.SecondDomain
		f.Detail = fmt.Sprintf("id defined in both %s and %s", dup.FirstDomain, dup.SecondDomain)
		res.Findings = append(res.Findings, f)
	}

	// Extraction and structural checks, per source entity.
	var edges []Edge
	for _, entry := range idx.Entries() {
		if opts.Domain != "" && entry.Domain != opts.Domain {
			continue
		}
		res.EntitiesScanned++

		ex := ExtractEdges(entry.Entity)
		if ex.Orphan {
			f := NewFinding(CatOrphan)
			f.SourceID = entry.Entity.ID
			f.Domain = entry.Domain
			res.Findings = append(res.Findings, f)
			continue
		}

		res.Findings = append(res.Findings, CheckStructural(ex, entry.Entity.ID, entry.Domain)...)
		edges = append(edges, ex.Edges...)
	}
	res.EdgesScanned = len(edges)

	fwd := CheckForward(edges, idx)
	res.Findings = append(res.Findings, fwd.Findings...)
	res.VerifiedForward = fwd.Verified

	bwd := NewBackwardChecker(idx, opts.Relations)
	res.Findings = append(res.Findings, bwd.Check(fwd.ByTarget)...)

	return res
}
