package registry

import "sort"

// Dependency is one external (target-language) library coordinate: a crate
// name and version constraint, emitted by the transpiler in Cargo.toml
// syntax (spec §6 "Dependency manifest format").
type Dependency struct {
	Name    string
	Version string
}

// libraryTable maps the opaque library identifiers named by registry
// entries to concrete Rust crate coordinates. This is the secondary table
// spec §4.B describes ("Each identifier is mapped to a target-language
// dependency declaration by a secondary table"), shaped like the teacher's
// wellknownimports embed-and-map table.
var libraryTable = map[string]Dependency{
	"core_runtime":        {Name: "nail-rt", Version: "0.1"},
	"hashmap_concurrent":  {Name: "dashmap", Version: "6"},
	"http_runtime":        {Name: "reqwest", Version: "0.12"},
	"time_runtime":        {Name: "chrono", Version: "0.4"},
	"crypto_runtime":      {Name: "sha2", Version: "0.10"},
	"markdown":            {Name: "pulldown-cmark", Version: "0.12"},
	"concurrency_runtime":  {Name: "tokio", Version: "1"},
}

// Resolve looks up the physical dependency for an opaque library
// identifier used in a registry entry's Libraries field.
func Resolve(id string) (Dependency, bool) {
	d, ok := libraryTable[id]
	return d, ok
}

// Manifest accumulates a de-duplicated, name-sorted dependency set (spec §6
// "A list of lines ... de-duplicated, sorted by name", §8 property 8
// "Registry closure").
type Manifest struct {
	deps map[string]Dependency
}

// NewManifest creates an empty Manifest.
func NewManifest() *Manifest { return &Manifest{deps: map[string]Dependency{}} }

// AddLibrary records the dependency for the given opaque identifier. Unknown
// identifiers are a programmer error: every identifier that can appear in
// the registry must have a libraryTable entry.
func (m *Manifest) AddLibrary(id string) {
	d, ok := Resolve(id)
	if !ok {
		panic("registry: no manifest entry for library identifier " + id)
	}
	m.deps[d.Name] = d
}

// Dependencies returns the accumulated set, sorted by crate name.
func (m *Manifest) Dependencies() []Dependency {
	out := make([]Dependency, 0, len(m.deps))
	for _, d := range m.deps {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lines renders the manifest in Cargo.toml dependency-line syntax, one
// `name = "version"` line per dependency (spec §6).
func (m *Manifest) Lines() []string {
	deps := m.Dependencies()
	lines := make([]string, len(deps))
	for i, d := range deps {
		lines[i] = d.Name + ` = "` + d.Version + `"`
	}
	return lines
}
