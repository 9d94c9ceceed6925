package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envmatch/envmatch/internal/allocator"
	"github.com/envmatch/envmatch/internal/nodespec"
	envmatcherrors "github.com/envmatch/envmatch/pkg/errors"
)

type minOptions struct {
	jsonOutput bool
	sku        string
}

func newMinCmd(flags *rootFlags) *cobra.Command {
	opts := &minOptions{}

	cmd := &cobra.Command{
		Use:   "min <requirement.yaml>",
		Short: "Pin each node requirement to its cheapest satisfying configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMin(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.sku, "sku", "", "Pin against this SKU instead of the cheapest match")

	return cmd
}

type minJSONNode struct {
	Node     string `json:"node"`
	SKU      string `json:"sku"`
	Cores    int    `json:"cores"`
	MemoryMB int    `json:"memory_mb"`
	GPUs     int    `json:"gpus"`
	Cost     int    `json:"cost"`
}

type minJSONPayload struct {
	Version string        `json:"version"`
	Name    string        `json:"name"`
	Nodes   []minJSONNode `json:"nodes"`
}

// pickCapability selects the capability to pin: the named SKU when --sku is
// given, the cheapest satisfying entry otherwise.
func pickCapability(alloc *allocator.Allocator, in *inputs, opts *minOptions, index int, requirement *nodespec.NodeSpec) (*nodespec.NodeSpec, error) {
	if opts.sku != "" {
		capability, ok := in.catalog.Lookup(opts.sku)
		if !ok {
			return nil, fmt.Errorf("unknown sku %q", opts.sku)
		}
		if result := requirement.Check(capability); !result.OK() {
			return nil, envmatcherrors.NewAllocationError(
				nodeLabel(index, requirement), result.Reasons())
		}
		return capability, nil
	}
	candidates, rejections := alloc.Candidates(requirement)
	if len(candidates) == 0 {
		return nil, envmatcherrors.NewAllocationError(
			nodeLabel(index, requirement), rejections)
	}
	return candidates[0], nil
}

func runMin(cmd *cobra.Command, flags *rootFlags, opts *minOptions, path string) error {
	log, err := newLogger(flags)
	if err != nil {
		return err
	}
	in, err := loadInputs(flags, path)
	if err != nil {
		return err
	}

	alloc := allocator.New(in.catalog, log)
	payload := minJSONPayload{Version: "1.0", Name: in.document.Name}
	for i, requirement := range in.requirements {
		capability, err := pickCapability(alloc, in, opts, i, requirement)
		if err != nil {
			return err
		}
		pinned, err := requirement.GenerateMin(capability)
		if err != nil {
			return err
		}
		cores, _ := pinned.CoreCount.Exact()
		memory, _ := pinned.MemoryMB.Exact()
		gpus, _ := pinned.GPUCount.Exact()
		payload.Nodes = append(payload.Nodes, minJSONNode{
			Node:     nodeLabel(i, requirement),
			SKU:      pinned.Name,
			Cores:    cores,
			MemoryMB: memory,
			GPUs:     gpus,
			Cost:     pinned.Cost(),
		})
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	styled := stdoutIsTerminal()
	out := cmd.OutOrStdout()
	for _, node := range payload.Nodes {
		fmt.Fprintf(out, "%s: %s (%d cores, %d MB, %d gpus, cost %d)\n",
			renderName(styled, node.Node), node.SKU,
			node.Cores, node.MemoryMB, node.GPUs, node.Cost)
	}
	return nil
}
