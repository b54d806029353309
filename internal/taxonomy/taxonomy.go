// Package taxonomy holds the fixed checklist taxonomy that item categories
// and points are drawn from. The taxonomy ships embedded in the binary; item
// fields remain free text, the taxonomy only feeds pickers.
package taxonomy

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var raw []byte

type Category struct {
	Name   string   `yaml:"name" json:"name"`
	Points []string `yaml:"points" json:"points"`
}

type Taxonomy struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Load parses the embedded taxonomy.
func Load() (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	return &t, nil
}

// CategoryNames returns the category names in declaration order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		names = append(names, c.Name)
	}
	return names
}
