package dataset

// Entity is one record in one domain collection. The relationships tree is
// kept as raw YAML structure (map[string]any) so malformed sections can be
// surfaced as findings instead of failing the whole file at decode time.
type Entity struct {
	ID            string         `yaml:"-"`
	Domain        string         `yaml:"-"`
	Name          string         `yaml:"name"`
	Category      string         `yaml:"category"`
	Subcategory   string         `yaml:"subcategory"`
	Relationships map[string]any `yaml:"relationships"`

	// CanonicalPath is computed once at index-build time from the domain's
	// path template. It is never read from the data file.
	CanonicalPath string `yaml:"-"`
}

// HasRelationships reports whether the entity carries any relationship
// structure at all. Entities without one are orphans, not errors.
func (e *Entity) HasRelationships() bool {
	return len(e.Relationships) > 0
}

// Collection maps entity id to entity for a single domain.
type Collection map[string]*Entity

// LoadFailure records a domain file that could not be read or parsed.
// The run continues without that domain's entities.
type LoadFailure struct {
	Domain string
	File   string
	Err    error
}

// Dataset is the full multi-domain load result.
type Dataset struct {
	Collections map[string]Collection // domain → id → entity
	Files       []string              // files successfully read, for the report header
	Failures    []LoadFailure
}

// EntityCount returns the total number of loaded entities across all domains.
func (d *Dataset) EntityCount() int {
	n := 0
	for _, c := range d.Collections {
		n += len(c)
	}
	return n
}
