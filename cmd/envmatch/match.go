package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/envmatch/envmatch/internal/allocator"
)

type matchOptions struct {
	jsonOutput bool
}

func newMatchCmd(flags *rootFlags) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match <requirement.yaml>",
		Short: "Allocate every node of the document onto the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type matchJSONNode struct {
	SKU      string `json:"sku"`
	Cores    int    `json:"cores"`
	MemoryMB int    `json:"memory_mb"`
	Cost     int    `json:"cost"`
}

type matchJSONPayload struct {
	Version    string          `json:"version"`
	Name       string          `json:"name"`
	Allocation string          `json:"allocation"`
	Nodes      []matchJSONNode `json:"nodes"`
}

func runMatch(cmd *cobra.Command, flags *rootFlags, opts *matchOptions, path string) error {
	log, err := newLogger(flags)
	if err != nil {
		return err
	}
	in, err := loadInputs(flags, path)
	if err != nil {
		return err
	}

	allocation, err := allocator.New(in.catalog, log).Allocate(in.requirements)
	if err != nil {
		return err
	}

	payload := matchJSONPayload{
		Version:    "1.0",
		Name:       in.document.Name,
		Allocation: allocation.ID,
	}
	for _, match := range allocation.Nodes {
		cores, _ := match.Pinned.CoreCount.Exact()
		memory, _ := match.Pinned.MemoryMB.Exact()
		payload.Nodes = append(payload.Nodes, matchJSONNode{
			SKU:      match.Capability.Name,
			Cores:    cores,
			MemoryMB: memory,
			Cost:     match.Pinned.Cost(),
		})
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "allocation %s\n", allocation.ID)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SKU\tCORES\tMEMORY_MB\tCOST")
	for _, node := range payload.Nodes {
		fmt.Fprintf(writer, "%s\t%d\t%d\t%d\n",
			node.SKU, node.Cores, node.MemoryMB, node.Cost)
	}
	return writer.Flush()
}
