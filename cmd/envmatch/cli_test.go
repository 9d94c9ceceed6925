package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRequirement = `version: "1.0"
name: sample
nodes:
  - name: worker
    core_count:
      min: 4
    memory_mb:
      min: 8192
`

const testCatalog = `version: "1.0"
skus:
  - name: Standard_D2_v5
    core_count: 2
    memory_mb: 8192
  - name: Standard_D8_v5
    core_count: 8
    memory_mb: 32768
`

func writeTestFiles(t *testing.T) (requirementPath, catalogPath string) {
	t.Helper()
	dir := t.TempDir()
	requirementPath = filepath.Join(dir, "requirement.yaml")
	catalogPath = filepath.Join(dir, "skus.yaml")
	require.NoError(t, os.WriteFile(requirementPath, []byte(testRequirement), 0o644))
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o644))
	return requirementPath, catalogPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "envmatch")
	require.Contains(t, out, "commit:")
}

func TestCheckCommand(t *testing.T) {
	requirementPath, catalogPath := writeTestFiles(t)

	out, err := runCommand(t, "check", requirementPath, "--catalog", catalogPath, "--json")
	require.NoError(t, err)

	var payload checkJSONPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.True(t, payload.Satisfied)
	require.Len(t, payload.Nodes, 1)
	require.Equal(t, "worker", payload.Nodes[0].Node)
	require.Equal(t, []string{"Standard_D8_v5"}, payload.Nodes[0].Candidates)
	require.Len(t, payload.Nodes[0].Rejections, 1)
}

func TestCheckCommandUnsatisfied(t *testing.T) {
	dir := t.TempDir()
	requirementPath := filepath.Join(dir, "requirement.yaml")
	catalogPath := filepath.Join(dir, "skus.yaml")
	huge := `version: "1.0"
name: huge
nodes:
  - core_count:
      min: 512
`
	require.NoError(t, os.WriteFile(requirementPath, []byte(huge), 0o644))
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o644))

	_, err := runCommand(t, "check", requirementPath, "--catalog", catalogPath)
	require.Error(t, err)
}

func TestMinCommand(t *testing.T) {
	requirementPath, catalogPath := writeTestFiles(t)

	out, err := runCommand(t, "min", requirementPath, "--catalog", catalogPath, "--json")
	require.NoError(t, err)

	var payload minJSONPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Nodes, 1)
	require.Equal(t, "Standard_D8_v5", payload.Nodes[0].SKU)
	require.Equal(t, 8, payload.Nodes[0].Cores)
	require.Equal(t, 32768, payload.Nodes[0].MemoryMB)
}

func TestMinCommandPinnedSKU(t *testing.T) {
	requirementPath, catalogPath := writeTestFiles(t)

	out, err := runCommand(t, "min", requirementPath,
		"--catalog", catalogPath, "--sku", "Standard_D8_v5", "--json")
	require.NoError(t, err)

	var payload minJSONPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "Standard_D8_v5", payload.Nodes[0].SKU)

	_, err = runCommand(t, "min", requirementPath,
		"--catalog", catalogPath, "--sku", "Standard_D2_v5")
	require.Error(t, err)
}

func TestMatchCommand(t *testing.T) {
	requirementPath, catalogPath := writeTestFiles(t)

	out, err := runCommand(t, "match", requirementPath, "--catalog", catalogPath, "--json")
	require.NoError(t, err)

	var payload matchJSONPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.NotEmpty(t, payload.Allocation)
	require.Len(t, payload.Nodes, 1)
	require.Equal(t, "Standard_D8_v5", payload.Nodes[0].SKU)
}

func TestMatchCommandMissingCatalog(t *testing.T) {
	requirementPath, _ := writeTestFiles(t)

	_, err := runCommand(t, "match", requirementPath, "--catalog", "/nonexistent/skus.yaml")
	require.Error(t, err)
}
