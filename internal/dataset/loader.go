package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mossgate/crosslink/internal/config"
)

// ErrNoDataDir indicates the configured dataset directory does not exist.
// This is the only unrecoverable load condition besides ErrNothingLoaded.
var ErrNoDataDir = errors.New("dataset directory not found")

// ErrNothingLoaded indicates every registered domain file failed to load.
var ErrNothingLoaded = errors.New("no domain collection could be loaded")

// Load reads every registered domain collection from dir. A single domain
// file that is missing or unparsable is recorded as a LoadFailure and its
// entities are simply absent from the result; the run only fails hard when
// the directory itself is missing or nothing at all loads.
func Load(dir string, domains map[string]config.DomainConfig) (*Dataset, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoDataDir, dir)
	}

	ds := &Dataset{Collections: make(map[string]Collection, len(domains))}

	// Deterministic load order keeps failure lists and counts stable run to run.
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		file := filepath.Join(dir, domains[name].File)
		coll, err := loadCollection(name, file)
		if err != nil {
			ds.Failures = append(ds.Failures, LoadFailure{Domain: name, File: domains[name].File, Err: err})
			continue
		}
		ds.Collections[name] = coll
		ds.Files = append(ds.Files, domains[name].File)
	}

	if len(ds.Collections) == 0 {
		return nil, fmt.Errorf("%w: %d file(s) failed under %s", ErrNothingLoaded, len(ds.Failures), dir)
	}
	return ds, nil
}

// loadCollection parses one domain file: a YAML mapping of entity id → record.
func loadCollection(domain, file string) (Collection, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(file), err)
	}

	var raw map[string]Entity
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(file), err)
	}

	coll := make(Collection, len(raw))
	for id, ent := range raw {
		e := ent
		e.ID = id
		e.Domain = domain
		coll[id] = &e
	}
	return coll, nil
}
