package integrity

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mossgate/crosslink/internal/dataset"
)

// runOver builds the dataset and index for the entities and executes Run.
func runOver(t *testing.T, opts Options, entities ...*dataset.Entity) *Result {
	t.Helper()
	ds := &dataset.Dataset{Collections: make(map[string]dataset.Collection)}
	for _, e := range entities {
		coll, ok := ds.Collections[e.Domain]
		if !ok {
			coll = make(dataset.Collection)
			ds.Collections[e.Domain] = coll
		}
		coll[e.ID] = e
	}
	idx := dataset.BuildIndex(ds, testDomainConfigs())
	if opts.Relations.Len() == 0 {
		opts.Relations = DefaultRelations()
	}
	return Run(ds, idx, opts)
}

func categories(findings []Finding) map[Category]int {
	counts := make(map[Category]int)
	for _, f := range findings {
		counts[f.Category]++
	}
	return counts
}

func TestRunCleanPair(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{},
		material("steel", map[string]any{
			"contamination": map[string]any{
				"producesCompounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
			},
		}),
		compound("hematite", map[string]any{
			"origin": map[string]any{
				"sourceContaminants": section(edgeItem("steel", "/materials/metal/ferrous/steel")),
			},
		}),
	)

	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, want none", res.Findings)
	}
	if res.EntitiesScanned != 2 || res.EdgesScanned != 2 || res.VerifiedForward != 2 {
		t.Errorf("counts = (%d, %d, %d), want (2, 2, 2)",
			res.EntitiesScanned, res.EdgesScanned, res.VerifiedForward)
	}
}

func TestRunMissingTargetSkipsBackwardCheck(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{},
		material("steel", map[string]any{
			"contamination": map[string]any{
				"producesCompounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
			},
		}),
		// hematite does not exist anywhere.
	)

	want := map[Category]int{CatMissingTarget: 1}
	if got := categories(res.Findings); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
}

func TestRunMissingBacklinkIsOnlyWarning(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{},
		material("steel", map[string]any{
			"contamination": map[string]any{
				"producesCompounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
			},
		}),
		compound("hematite", map[string]any{
			"other": map[string]any{
				"relatedCompounds": section(edgeItem("magnetite", "/compounds/oxide/iron/magnetite-compound")),
			},
		}),
		compound("magnetite", map[string]any{
			"other": map[string]any{
				"relatedCompounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
			},
		}),
	)

	want := map[Category]int{CatMissingBacklink: 1}
	if got := categories(res.Findings); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	for _, f := range res.Findings {
		if f.IsError() {
			t.Errorf("missing backlink must not be an error: %v", f)
		}
	}
}

func TestRunStaleBacklinkPath(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{},
		material("steel", map[string]any{
			"contamination": map[string]any{
				"producesCompounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
			},
		}),
		compound("hematite", map[string]any{
			"origin": map[string]any{
				"sourceContaminants": section(edgeItem("steel", "/compounds/old/steel")),
			},
		}),
	)

	// The stale backlink is a backlink_mismatch from steel's point of view
	// and a path_mismatch from hematite's own forward edge.
	got := categories(res.Findings)
	if got[CatBacklinkMismatch] != 1 {
		t.Errorf("backlink_mismatch = %d, want 1 (all: %v)", got[CatBacklinkMismatch], got)
	}
	if got[CatPathMismatch] != 1 {
		t.Errorf("path_mismatch = %d, want 1 (all: %v)", got[CatPathMismatch], got)
	}
}

func TestRunStructuralSectionYieldsNoEdges(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{},
		material("steel", map[string]any{
			"contamination": map[string]any{
				"producesCompounds": map[string]any{
					"items": edgeItem("hematite", "/compounds/oxide/iron/hematite-compound"),
				},
			},
		}),
		compound("hematite", nil),
	)

	got := categories(res.Findings)
	if got[CatStructural] != 1 {
		t.Errorf("structural = %d, want 1 (all: %v)", got[CatStructural], got)
	}
	if res.EdgesScanned != 0 {
		t.Errorf("EdgesScanned = %d, want 0", res.EdgesScanned)
	}
	// hematite has no relationships at all → orphan, nothing else.
	if got[CatOrphan] != 1 {
		t.Errorf("orphan = %d, want 1", got[CatOrphan])
	}
}

func TestRunOrphan(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{}, material("lonely", nil))

	want := map[Category]int{CatOrphan: 1}
	if got := categories(res.Findings); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	if res.EdgesScanned != 0 {
		t.Errorf("orphan contributed %d edges", res.EdgesScanned)
	}
}

func TestRunLoadFailureBecomesFinding(t *testing.T) {
	t.Parallel()

	ds := &dataset.Dataset{
		Collections: map[string]dataset.Collection{
			"materials": {"steel": material("steel", nil)},
		},
		Failures: []dataset.LoadFailure{
			{Domain: "compounds", File: "compounds.yaml", Err: errors.New("yaml: line 3: mapping values")},
		},
	}
	idx := dataset.BuildIndex(ds, testDomainConfigs())
	res := Run(ds, idx, Options{Relations: DefaultRelations()})

	loads := findByCategory(res.Findings, CatLoad)
	if len(loads) != 1 {
		t.Fatalf("load findings = %v, want 1", res.Findings)
	}
	if !loads[0].IsError() {
		t.Error("load failures are errors")
	}
	if loads[0].Domain != "compounds" {
		t.Errorf("domain = %q", loads[0].Domain)
	}
}

func TestRunDuplicateID(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{},
		material("rust", nil),
		compound("rust", nil),
	)

	dups := findByCategory(res.Findings, CatDuplicateID)
	if len(dups) != 1 {
		t.Fatalf("duplicate_id findings = %v, want 1", res.Findings)
	}
	if !dups[0].IsError() {
		t.Error("duplicate ids are errors")
	}
}

func TestRunDomainFilter(t *testing.T) {
	t.Parallel()

	res := runOver(t, Options{Domain: "materials"},
		material("steel", map[string]any{
			"contamination": map[string]any{
				"producesCompounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
			},
		}),
		// hematite's own dangling edge must be ignored under the filter,
		// but hematite stays in the index so steel's edge resolves.
		compound("hematite", map[string]any{
			"origin": map[string]any{
				"sourceContaminants": section(
					edgeItem("steel", "/materials/metal/ferrous/steel"),
					edgeItem("ghost", "/materials/metal/ferrous/ghost"),
				),
			},
		}),
	)

	if res.EntitiesScanned != 1 {
		t.Errorf("EntitiesScanned = %d, want 1", res.EntitiesScanned)
	}
	if got := categories(res.Findings); got[CatMissingTarget] != 0 {
		t.Errorf("filtered domain's edges leaked into validation: %v", got)
	}
}

func TestRunIdempotent(t *testing.T) {
	t.Parallel()

	build := func() *Result {
		return runOver(t, Options{},
			material("steel", map[string]any{
				"contamination": map[string]any{
					"producesCompounds": section(
						edgeItem("hematite", "/compounds/stale/hematite"),
						edgeItem("ghost", "/compounds/oxide/iron/ghost-compound"),
					),
					"produces_compounds": section(edgeItem("hematite", "/compounds/oxide/iron/hematite-compound")),
				},
			}),
			compound("hematite", nil),
		)
	}

	a, b := build(), build()
	if !reflect.DeepEqual(a.Findings, b.Findings) {
		t.Errorf("two runs over identical data differ:\n%v\n%v", a.Findings, b.Findings)
	}
}
