package main

import (
	"fmt"

	"github.com/envmatch/envmatch/internal/catalog"
	"github.com/envmatch/envmatch/internal/config"
	"github.com/envmatch/envmatch/internal/nodespec"
)

type inputs struct {
	document     *config.Document
	requirements []*nodespec.NodeSpec
	catalog      *catalog.Catalog
}

// loadInputs reads the requirement document and the catalog every matching
// command starts from.
func loadInputs(flags *rootFlags, requirementPath string) (*inputs, error) {
	document, err := config.ParseDocument(requirementPath)
	if err != nil {
		return nil, err
	}
	requirements, err := document.Requirements()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(flags.catalogPath)
	if err != nil {
		return nil, err
	}
	return &inputs{
		document:     document,
		requirements: requirements,
		catalog:      cat,
	}, nil
}

// nodeLabel names one node group for output, falling back to its index.
func nodeLabel(index int, spec *nodespec.NodeSpec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return fmt.Sprintf("nodes[%d]", index)
}
