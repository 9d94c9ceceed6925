package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envmatch/envmatch/internal/allocator"
	envmatcherrors "github.com/envmatch/envmatch/pkg/errors"
)

type checkOptions struct {
	jsonOutput bool
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <requirement.yaml>",
		Short: "Check which catalog SKUs satisfy each node requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type checkJSONNode struct {
	Node       string   `json:"node"`
	Satisfied  bool     `json:"satisfied"`
	Candidates []string `json:"candidates,omitempty"`
	Rejections []string `json:"rejections,omitempty"`
}

type checkJSONPayload struct {
	Version   string          `json:"version"`
	Name      string          `json:"name"`
	Satisfied bool            `json:"satisfied"`
	Nodes     []checkJSONNode `json:"nodes"`
}

func runCheck(cmd *cobra.Command, flags *rootFlags, opts *checkOptions, path string) error {
	log, err := newLogger(flags)
	if err != nil {
		return err
	}
	in, err := loadInputs(flags, path)
	if err != nil {
		return err
	}

	alloc := allocator.New(in.catalog, log)
	payload := checkJSONPayload{
		Version:   "1.0",
		Name:      in.document.Name,
		Satisfied: true,
	}
	for i, requirement := range in.requirements {
		candidates, rejections := alloc.Candidates(requirement)
		node := checkJSONNode{
			Node:       nodeLabel(i, requirement),
			Satisfied:  len(candidates) > 0,
			Rejections: rejections,
		}
		for _, candidate := range candidates {
			node.Candidates = append(node.Candidates, candidate.Name)
		}
		if !node.Satisfied {
			payload.Satisfied = false
		}
		payload.Nodes = append(payload.Nodes, node)
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return err
		}
	} else {
		renderCheckText(cmd, payload)
	}

	if !payload.Satisfied {
		return envmatcherrors.NewAllocationError(in.document.Name, nil)
	}
	return nil
}

func renderCheckText(cmd *cobra.Command, payload checkJSONPayload) {
	styled := stdoutIsTerminal()
	out := cmd.OutOrStdout()

	for _, node := range payload.Nodes {
		marker := renderPass(styled)
		if !node.Satisfied {
			marker = renderFail(styled)
		}
		fmt.Fprintf(out, "%s %s\n", marker, renderName(styled, node.Node))
		for _, candidate := range node.Candidates {
			fmt.Fprintf(out, "  %s\n", candidate)
		}
		for _, rejection := range node.Rejections {
			fmt.Fprintf(out, "  %s\n", renderReason(styled, rejection))
		}
	}
}
