package integrity

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// RelationMap associates a forward relationship field with the field expected
// on the reverse side. Fields absent from the map are intentionally
// one-directional and exempt from backward validation.
type RelationMap struct {
	reverse map[string]string
}

// DefaultRelations returns the built-in forward → reverse field table.
// Symmetric relations are self-paired.
func DefaultRelations() RelationMap {
	return RelationMap{reverse: map[string]string{
		"producesCompounds":   "sourceContaminants",
		"sourceContaminants":  "producesCompounds",
		"foundOnMaterials":    "commonContaminants",
		"commonContaminants":  "foundOnMaterials",
		"removesContaminants": "removalSettings",
		"removalSettings":     "removesContaminants",
		"recommendedSettings": "applicableMaterials",
		"applicableMaterials": "recommendedSettings",
		"relatedMaterials":    "relatedMaterials",
		"relatedContaminants": "relatedContaminants",
		"relatedCompounds":    "relatedCompounds",
	}}
}

// relationsFile is the TOML shape of a relation override file:
//
//	[relations]
//	producesCompounds = "sourceContaminants"
type relationsFile struct {
	Relations map[string]string `toml:"relations"`
}

// LoadRelations reads a TOML override file and merges it over the defaults.
// Entries mapping a field to "" delete the default pairing, making the field
// one-directional.
func LoadRelations(path string) (RelationMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RelationMap{}, fmt.Errorf("reading relations file: %w", err)
	}

	var rf relationsFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return RelationMap{}, fmt.Errorf("parsing relations file: %w", err)
	}

	merged := DefaultRelations()
	for fwd, rev := range rf.Relations {
		if rev == "" {
			delete(merged.reverse, fwd)
			continue
		}
		merged.reverse[fwd] = rev
	}
	return merged, nil
}

// Reverse returns the reverse field expected for fwd, and whether the
// relation is bidirectional at all.
func (m RelationMap) Reverse(fwd string) (string, bool) {
	rev, ok := m.reverse[fwd]
	return rev, ok
}

// Len returns the number of mapped forward fields.
func (m RelationMap) Len() int {
	return len(m.reverse)
}
