package integrity

import (
	"fmt"
	"sort"

	"github.com/mossgate/crosslink/internal/dataset"
)

// Edge is one directed reference extracted from a source entity's
// relationships tree, with its cached display fields.
type Edge struct {
	SourceID     string
	SourceDomain string
	Category     string // relationship grouping label, e.g. "contamination"
	Field        string // section name, e.g. "producesCompounds"
	TargetID     string
	URL          string         // cached path; "" when the author omitted it
	Name         string         // cached display name; "" when omitted
	Raw          map[string]any // full item for structural checks
}

// Malformed records a relationship node that deviates from the
// category → section → items schema. The extractor skips these nodes and
// hands them to the structural validator; it never drops them silently.
type Malformed struct {
	Category string
	Field    string
	Reason   string
}

// Extraction is the result of walking one entity's relationships.
type Extraction struct {
	Edges     []Edge
	Malformed []Malformed
	Sections  []string // every section name seen, for naming checks
	Orphan    bool
}

// ExtractEdges walks an entity's relationship tree against the explicit
// schema: category → section → {items: [edge, ...]}. Any deviation becomes a
// Malformed entry rather than a crash; an absent or empty relationships key
// marks the entity as an orphan.
func ExtractEdges(e *dataset.Entity) Extraction {
	var ex Extraction

	if !e.HasRelationships() {
		ex.Orphan = true
		return ex
	}

	// Sorted iteration keeps extraction order, and therefore report output,
	// identical run to run.
	for _, category := range sortedKeys(e.Relationships) {
		catVal := e.Relationships[category]
		sections, ok := catVal.(map[string]any)
		if !ok {
			ex.Malformed = append(ex.Malformed, Malformed{
				Category: category,
				Reason:   fmt.Sprintf("category value is %s, want mapping of sections", typeName(catVal)),
			})
			continue
		}

		for _, field := range sortedKeys(sections) {
			secVal := sections[field]
			ex.Sections = append(ex.Sections, field)

			section, ok := secVal.(map[string]any)
			if !ok {
				ex.Malformed = append(ex.Malformed, Malformed{
					Category: category,
					Field:    field,
					Reason:   fmt.Sprintf("section value is %s, want mapping with items list", typeName(secVal)),
				})
				continue
			}

			itemsVal, ok := section["items"]
			if !ok {
				ex.Malformed = append(ex.Malformed, Malformed{
					Category: category,
					Field:    field,
					Reason:   "section has no items key",
				})
				continue
			}

			items, ok := itemsVal.([]any)
			if !ok {
				// A single mapping where a list belongs is the classic
				// hand-edit mistake; it yields zero edges, never a crash.
				ex.Malformed = append(ex.Malformed, Malformed{
					Category: category,
					Field:    field,
					Reason:   fmt.Sprintf("items is %s, want list", typeName(itemsVal)),
				})
				continue
			}

			for i, item := range items {
				edge, ok := itemToEdge(e, category, field, item)
				if !ok {
					ex.Malformed = append(ex.Malformed, Malformed{
						Category: category,
						Field:    field,
						Reason:   fmt.Sprintf("items[%d] is %s, want mapping with targetId", i, typeName(item)),
					})
					continue
				}
				ex.Edges = append(ex.Edges, edge)
			}
		}
	}

	return ex
}

// itemToEdge converts one items entry into an Edge. It requires a mapping
// that carries a string targetId; everything else about the item's shape is
// the structural validator's business.
func itemToEdge(e *dataset.Entity, category, field string, item any) (Edge, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return Edge{}, false
	}
	targetID, ok := m["targetId"].(string)
	if !ok || targetID == "" {
		return Edge{}, false
	}

	edge := Edge{
		SourceID:     e.ID,
		SourceDomain: e.Domain,
		Category:     category,
		Field:        field,
		TargetID:     targetID,
		Raw:          m,
	}
	if url, ok := m["url"].(string); ok {
		edge.URL = url
	}
	if name, ok := m["name"].(string); ok {
		edge.Name = name
	}
	return edge, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// typeName names a YAML value's shape for finding messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "mapping"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
