package dataset

import (
	"sort"

	"github.com/mossgate/crosslink/internal/config"
)

// IndexEntry is the per-entity view the validators consume: the entity plus
// its precomputed canonical path. Paths are rendered exactly once here so
// every later comparison shares a single source of truth.
type IndexEntry struct {
	Entity        *Entity
	Domain        string
	CanonicalPath string
	DisplayName   string
}

// Duplicate records two entities sharing one id across domains. The id space
// is global, so this is a hard structural problem.
type Duplicate struct {
	ID           string
	FirstDomain  string
	SecondDomain string
}

// Index is the flat global id → entry lookup built from all loaded domains.
type Index struct {
	entries    map[string]*IndexEntry
	duplicates []Duplicate
}

// BuildIndex merges per-domain collections into one global lookup, rendering
// each entity's canonical path from its domain's template. Domains are
// processed in the Dataset's deterministic order; when an id collides, the
// first-seen entity stays in the index and the collision is recorded.
func BuildIndex(ds *Dataset, domains map[string]config.DomainConfig) *Index {
	idx := &Index{entries: make(map[string]*IndexEntry, ds.EntityCount())}

	for _, domain := range sortedDomains(ds) {
		tmpl := PathTemplate(domains[domain].PathTemplate)
		for _, id := range sortedIDs(ds.Collections[domain]) {
			ent := ds.Collections[domain][id]
			if prev, ok := idx.entries[id]; ok {
				idx.duplicates = append(idx.duplicates, Duplicate{
					ID:           id,
					FirstDomain:  prev.Domain,
					SecondDomain: domain,
				})
				continue
			}
			ent.CanonicalPath = tmpl.Render(ent.Category, ent.Subcategory, id)
			idx.entries[id] = &IndexEntry{
				Entity:        ent,
				Domain:        domain,
				CanonicalPath: ent.CanonicalPath,
				DisplayName:   ent.Name,
			}
		}
	}
	return idx
}

// Lookup returns the entry for id, or nil if no entity anywhere carries it.
func (x *Index) Lookup(id string) *IndexEntry {
	return x.entries[id]
}

// Duplicates returns all cross-domain id collisions found at build time.
func (x *Index) Duplicates() []Duplicate {
	return x.duplicates
}

// Len returns the number of indexed entities.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entries iterates indexed entries in deterministic (sorted id) order.
func (x *Index) Entries() []*IndexEntry {
	ids := make([]string, 0, len(x.entries))
	for id := range x.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*IndexEntry, len(ids))
	for i, id := range ids {
		out[i] = x.entries[id]
	}
	return out
}

func sortedDomains(ds *Dataset) []string {
	names := make([]string, 0, len(ds.Collections))
	for name := range ds.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedIDs(c Collection) []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
