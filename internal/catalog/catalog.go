package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ModelDescriptor is one entry of the furniture catalog: a display title, an icon reference
// for the list thumbnail, and the asset reference the asset library resolves into a renderable.
// Descriptors are values; the catalog hands out copies so nothing downstream can mutate it.
type ModelDescriptor struct {
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
	Asset string `yaml:"asset"`
}

// Catalog is the fixed, ordered list of models shown in the bottom sheet.
type Catalog struct {
	models []ModelDescriptor
}

type catalogFile struct {
	Models []ModelDescriptor `yaml:"models"`
}

// Default returns the embedded catalog (Chair, Couch, Table, Oven, Piano).
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("catalog: embedded catalog.yaml: " + err.Error())
	}
	return c
}

// Load reads a catalog YAML file from path. Use Default when no override is configured.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML. Every entry needs a title and an asset; titles must be unique
// (case-insensitive) because commands select models by title.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if len(f.Models) == 0 {
		return nil, fmt.Errorf("catalog: no models")
	}
	seen := make(map[string]bool, len(f.Models))
	for i, m := range f.Models {
		if strings.TrimSpace(m.Title) == "" {
			return nil, fmt.Errorf("catalog: model %d: missing title", i)
		}
		if strings.TrimSpace(m.Asset) == "" {
			return nil, fmt.Errorf("catalog: model %q: missing asset", m.Title)
		}
		key := strings.ToLower(m.Title)
		if seen[key] {
			return nil, fmt.Errorf("catalog: duplicate title %q", m.Title)
		}
		seen[key] = true
	}
	return &Catalog{models: f.Models}, nil
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	return len(c.models)
}

// At returns the model at index i in display order.
func (c *Catalog) At(i int) (ModelDescriptor, bool) {
	if i < 0 || i >= len(c.models) {
		return ModelDescriptor{}, false
	}
	return c.models[i], true
}

// Find returns the model whose title matches (case-insensitive).
func (c *Catalog) Find(title string) (ModelDescriptor, bool) {
	for _, m := range c.models {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return ModelDescriptor{}, false
}

// Models returns a copy of all models in display order.
func (c *Catalog) Models() []ModelDescriptor {
	out := make([]ModelDescriptor, len(c.models))
	copy(out, c.models)
	return out
}
