package motif

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a named PAM, located 3' of the protospacer.
type Preset struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Note    string `yaml:"note,omitempty"`
}

// Presets is a name → Preset table. Lookups are case-insensitive.
type Presets map[string]Preset

// Builtin returns the built-in table. Every pattern stays inside {A,C,G,T,N}.
func Builtin() Presets {
	return Presets{
		"spcas9":      {Name: "SpCas9", Pattern: "NGG", Note: "S. pyogenes Cas9"},
		"spcas9-ng":   {Name: "SpCas9-NG", Pattern: "NG", Note: "relaxed SpCas9 variant"},
		"spcas9-vqr":  {Name: "SpCas9-VQR", Pattern: "NGA"},
		"spcas9-eqr":  {Name: "SpCas9-EQR", Pattern: "NGAG"},
		"spcas9-vrer": {Name: "SpCas9-VRER", Pattern: "NGCG"},
		"stcas9":      {Name: "StCas9", Pattern: "NNAGAA", Note: "S. thermophilus CRISPR1"},
		"nmcas9":      {Name: "NmCas9", Pattern: "NNNNGATT", Note: "N. meningitidis Cas9"},
	}
}

// Get looks a preset up by name.
func (ps Presets) Get(name string) (Preset, bool) {
	p, ok := ps[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns the display names, sorted.
func (ps Presets) Names() []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a preset name or a literal pattern into a pattern string.
func (ps Presets) Resolve(nameOrPattern string) string {
	if p, ok := ps.Get(nameOrPattern); ok {
		return p.Pattern
	}
	return strings.ToUpper(strings.TrimSpace(nameOrPattern))
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// ReadPresets decodes a YAML document of the form
//
//	presets:
//	  - name: MyCas
//	    pattern: NNGG
//
// and adds every entry to a copy of ps. Patterns are validated with Compile.
func (ps Presets) ReadPresets(r io.Reader) (Presets, error) {
	var doc presetFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	out := make(Presets, len(ps)+len(doc.Presets))
	for k, v := range ps {
		out[k] = v
	}
	for _, p := range doc.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("preset with pattern %q has no name", p.Pattern)
		}
		if _, err := Compile(p.Pattern); err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		p.Pattern = strings.ToUpper(p.Pattern)
		out[strings.ToLower(strings.TrimSpace(p.Name))] = p
	}
	return out, nil
}

// LoadPresets reads extra presets from a YAML file on top of ps.
func (ps Presets) LoadPresets(path string) (Presets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ps.ReadPresets(f)
}
