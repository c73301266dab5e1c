package dataset

import (
	"testing"
)

func collection(domain string, entities ...*Entity) Collection {
	c := make(Collection, len(entities))
	for _, e := range entities {
		e.Domain = domain
		c[e.ID] = e
	}
	return c
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Collections: map[string]Collection{
		"materials": collection("materials",
			&Entity{ID: "steel", Name: "Steel", Category: "metal", Subcategory: "ferrous"},
		),
		"compounds": collection("compounds",
			&Entity{ID: "hematite", Name: "Hematite", Category: "oxide", Subcategory: "iron"},
		),
	}}

	idx := BuildIndex(ds, testDomains())

	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}

	steel := idx.Lookup("steel")
	if steel == nil {
		t.Fatal("steel not indexed")
	}
	if steel.CanonicalPath != "/materials/metal/ferrous/steel" {
		t.Errorf("steel canonical path = %q", steel.CanonicalPath)
	}
	if steel.Domain != "materials" || steel.DisplayName != "Steel" {
		t.Errorf("steel entry = (%q, %q)", steel.Domain, steel.DisplayName)
	}

	hematite := idx.Lookup("hematite")
	if hematite == nil {
		t.Fatal("hematite not indexed")
	}
	if hematite.CanonicalPath != "/compounds/oxide/iron/hematite-compound" {
		t.Errorf("hematite canonical path = %q", hematite.CanonicalPath)
	}

	if idx.Lookup("unobtainium") != nil {
		t.Error("Lookup of unknown id should be nil")
	}
}

func TestBuildIndexCrossDomainDuplicate(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Collections: map[string]Collection{
		"materials": collection("materials",
			&Entity{ID: "rust", Name: "Rust (material?)", Category: "metal", Subcategory: "ferrous"},
		),
		"compounds": collection("compounds",
			&Entity{ID: "rust", Name: "Rust", Category: "oxide", Subcategory: "iron"},
		),
	}}

	idx := BuildIndex(ds, testDomains())

	dups := idx.Duplicates()
	if len(dups) != 1 {
		t.Fatalf("Duplicates() = %d, want 1", len(dups))
	}
	if dups[0].ID != "rust" {
		t.Errorf("duplicate id = %q", dups[0].ID)
	}
	// Domains are processed in sorted order, so compounds wins.
	if dups[0].FirstDomain != "compounds" || dups[0].SecondDomain != "materials" {
		t.Errorf("duplicate domains = (%q, %q)", dups[0].FirstDomain, dups[0].SecondDomain)
	}
	if got := idx.Lookup("rust").Domain; got != "compounds" {
		t.Errorf("first-seen entity should stay indexed, got domain %q", got)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestIndexEntriesDeterministicOrder(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Collections: map[string]Collection{
		"materials": collection("materials",
			&Entity{ID: "zinc", Category: "metal", Subcategory: "non-ferrous"},
			&Entity{ID: "steel", Category: "metal", Subcategory: "ferrous"},
			&Entity{ID: "copper", Category: "metal", Subcategory: "non-ferrous"},
		),
	}}

	idx := BuildIndex(ds, testDomains())
	entries := idx.Entries()
	want := []string{"copper", "steel", "zinc"}
	for i, e := range entries {
		if e.Entity.ID != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, e.Entity.ID, want[i])
		}
	}
}
