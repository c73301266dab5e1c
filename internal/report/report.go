package report

import (
	"github.com/mossgate/crosslink/internal/integrity"
)

// categoryOrder fixes the rendering and export order of finding buckets.
var categoryOrder = []integrity.Category{
	integrity.CatLoad,
	integrity.CatDuplicateID,
	integrity.CatMissingTarget,
	integrity.CatPathMismatch,
	integrity.CatBacklinkMismatch,
	integrity.CatStructural,
	integrity.CatMissingBacklink,
	integrity.CatDuplicateEdge,
	integrity.CatDuplicateBacklink,
	integrity.CatNaming,
	integrity.CatOrphan,
}

// Bucket aggregates one category's findings with a capped example list.
type Bucket struct {
	Category integrity.Category  `json:"category"`
	Severity integrity.Severity  `json:"severity"`
	Count    int                 `json:"count"`
	Examples []integrity.Finding `json:"examples"`
}

// Report is the aggregated outcome of one validation run.
type Report struct {
	Files           []string            `json:"files"`
	EntitiesLoaded  map[string]int      `json:"entities_loaded"`
	EntitiesScanned int                 `json:"entities_scanned"`
	EdgesScanned    int                 `json:"edges_scanned"`
	VerifiedForward int                 `json:"verified_forward"`
	Errors          int                 `json:"errors"`
	Warnings        int                 `json:"warnings"`
	Buckets         []Bucket            `json:"buckets"`
	Findings        []integrity.Finding `json:"findings"`
	Passed          bool                `json:"passed"`
}

// Build groups a run's findings by category with at most maxExamples example
// findings per bucket. The full finding list is retained for --details output
// and JSON export; only the terminal summary is capped.
func Build(res *integrity.Result, maxExamples int) *Report {
	if maxExamples <= 0 {
		maxExamples = 5
	}

	r := &Report{
		Files:           res.Files,
		EntitiesLoaded:  res.EntitiesLoaded,
		EntitiesScanned: res.EntitiesScanned,
		EdgesScanned:    res.EdgesScanned,
		VerifiedForward: res.VerifiedForward,
		Findings:        res.Findings,
	}

	byCat := make(map[integrity.Category][]integrity.Finding)
	for _, f := range res.Findings {
		byCat[f.Category] = append(byCat[f.Category], f)
		if f.IsError() {
			r.Errors++
		} else {
			r.Warnings++
		}
	}

	for _, cat := range categoryOrder {
		findings := byCat[cat]
		if len(findings) == 0 {
			continue
		}
		examples := findings
		if len(examples) > maxExamples {
			examples = examples[:maxExamples]
		}
		r.Buckets = append(r.Buckets, Bucket{
			Category: cat,
			Severity: findings[0].Severity,
			Count:    len(findings),
			Examples: examples,
		})
	}

	r.Passed = r.Errors == 0
	return r
}

// ExitCode maps the report to the process exit status: warnings never fail
// a run, any error-severity finding does. Fatal load failures exit 2 before
// a report exists at all.
func (r *Report) ExitCode() int {
	if r.Passed {
		return 0
	}
	return 1
}
