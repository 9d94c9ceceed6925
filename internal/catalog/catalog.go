// Package catalog loads the SKU catalog: the capability side of matching.
// Each entry describes what one SKU offers, in the same YAML shorthand the
// requirement documents use.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/envmatch/envmatch/internal/config"
	"github.com/envmatch/envmatch/internal/nodespec"
	"github.com/envmatch/envmatch/internal/searchspace"
	envmatcherrors "github.com/envmatch/envmatch/pkg/errors"
)

// Catalog is an ordered collection of SKU capabilities.
type Catalog struct {
	entries []*nodespec.NodeSpec
	byName  map[string]*nodespec.NodeSpec
}

type document struct {
	Version string                   `yaml:"version"`
	Name    string                   `yaml:"name,omitempty"`
	SKUs    []config.NodeRequirement `yaml:"skus"`
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, envmatcherrors.NewCatalogError(path, err)
	}
	catalog, err := Parse(data)
	if err != nil {
		return nil, envmatcherrors.NewCatalogError(path, err)
	}
	return catalog, nil
}

// Parse decodes an in-memory catalog. Every entry needs a unique name and
// concrete core and memory counts; node counts are pinned to one node, a SKU
// always describes a single machine.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.SKUs) == 0 {
		return nil, fmt.Errorf("catalog has no skus")
	}

	catalog := &Catalog{
		entries: make([]*nodespec.NodeSpec, 0, len(doc.SKUs)),
		byName:  make(map[string]*nodespec.NodeSpec, len(doc.SKUs)),
	}
	for i, sku := range doc.SKUs {
		if sku.Name == "" {
			return nil, fmt.Errorf("skus[%d]: name is required", i)
		}
		if _, dup := catalog.byName[sku.Name]; dup {
			return nil, fmt.Errorf("skus[%d]: duplicate sku %q", i, sku.Name)
		}
		spec, err := sku.Spec()
		if err != nil {
			return nil, fmt.Errorf("skus[%d]: %w", i, err)
		}
		spec.NodeCount = searchspace.ExactCount(1)
		if !spec.CoreCount.IsSet() || !spec.MemoryMB.IsSet() {
			return nil, fmt.Errorf(
				"skus[%d]: %s needs core_count and memory_mb", i, sku.Name)
		}
		catalog.entries = append(catalog.entries, spec)
		catalog.byName[sku.Name] = spec
	}
	return catalog, nil
}

// All returns the capabilities in catalog order.
func (c *Catalog) All() []*nodespec.NodeSpec {
	return c.entries
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the capability with the given SKU name.
func (c *Catalog) Lookup(name string) (*nodespec.NodeSpec, bool) {
	spec, ok := c.byName[name]
	return spec, ok
}
