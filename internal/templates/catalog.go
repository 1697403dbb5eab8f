// Package templates enumerates the visual card templates and resolves
// template ids to usable descriptors.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"gopkg.in/yaml.v3"
)

// ErrNoTemplates means the catalog has no usable template at all. A run
// cannot proceed without one.
var ErrNoTemplates = errors.New("no card templates available")

// Descriptor identifies one visual card style.
type Descriptor struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"displayName" json:"display_name"`
	Description string `yaml:"description" json:"description"`
	Filename    string `yaml:"filename" json:"filename"`
}

// DefaultRegistry returns the built-in template registry.
func DefaultRegistry() []Descriptor {
	return []Descriptor{
		{
			ID:          "bright_swiss",
			DisplayName: "Bright Swiss Design",
			Description: "A modern Swiss-inspired design with bright yellow and blue accents.",
			Filename:    "bright_swiss_template.html",
		},
		{
			ID:          "detailed",
			DisplayName: "Detailed Representation",
			Description: "A detailed, ornate design with a focus on clear information hierarchy.",
			Filename:    "detailed_representation_template.html",
		},
	}
}

// LoadRegistry parses a YAML registry document of the form:
//
//	templates:
//	  - id: bright_swiss
//	    displayName: ...
func LoadRegistry(data []byte) ([]Descriptor, error) {
	var doc struct {
		Templates []Descriptor `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse template registry: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("template registry defines no templates")
	}
	return doc.Templates, nil
}

// Catalog resolves template ids against the registry entries whose backing
// resource actually exists.
type Catalog struct {
	fsys      fs.FS
	available []Descriptor
}

// NewCatalog filters registry against the filesystem. Entries without a
// backing resource are dropped with a log line; an empty result is a
// configuration error.
func NewCatalog(fsys fs.FS, registry []Descriptor) (*Catalog, error) {
	available := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		if _, err := fs.Stat(fsys, d.Filename); err != nil {
			log.Printf("template %q: resource %s missing, skipping", d.ID, d.Filename)
			continue
		}
		available = append(available, d)
	}
	if len(available) == 0 {
		return nil, ErrNoTemplates
	}
	return &Catalog{fsys: fsys, available: available}, nil
}

// Available returns the usable descriptors in registry declaration order.
func (c *Catalog) Available() []Descriptor {
	out := make([]Descriptor, len(c.available))
	copy(out, c.available)
	return out
}

// Resolve returns the descriptor for id, or the first available descriptor
// when id is unknown. It never fails: the catalog is guaranteed non-empty.
func (c *Catalog) Resolve(id string) Descriptor {
	for _, d := range c.available {
		if d.ID == id {
			return d
		}
	}
	log.Printf("template %q not found, using %q", id, c.available[0].ID)
	return c.available[0]
}

// Resource reads the backing template document for a descriptor.
func (c *Catalog) Resource(d Descriptor) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, d.Filename)
	if err != nil {
		return nil, fmt.Errorf("read template %q: %w", d.ID, err)
	}
	return data, nil
}
