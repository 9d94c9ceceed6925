package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/envmatch/envmatch/internal/searchspace"
)

func TestCountDecodeExact(t *testing.T) {
	t.Parallel()

	var count Count
	require.NoError(t, yaml.Unmarshal([]byte(`4`), &count))

	exact, ok := count.Space().Exact()
	require.True(t, ok)
	require.Equal(t, 4, exact)
}

func TestCountDecodeRange(t *testing.T) {
	t.Parallel()

	var count Count
	require.NoError(t, yaml.Unmarshal([]byte("min: 4\nmax: 16\n"), &count))

	r, ok := count.Space().Range()
	require.True(t, ok)
	require.Equal(t, 4, r.Min)
	require.Equal(t, 16, r.Max)
	require.True(t, r.MaxInclusive)
}

func TestCountDecodeOpenRange(t *testing.T) {
	t.Parallel()

	var count Count
	require.NoError(t, yaml.Unmarshal([]byte("min: 8\n"), &count))

	r, ok := count.Space().Range()
	require.True(t, ok)
	require.Equal(t, 8, r.Min)
	require.Equal(t, searchspace.Unlimited, r.Max)
}

func TestCountDecodeAlternatives(t *testing.T) {
	t.Parallel()

	var count Count
	data := "- 4\n- min: 16\n  max: 64\n  max_inclusive: false\n"
	require.NoError(t, yaml.Unmarshal([]byte(data), &count))

	alternatives, ok := count.Space().Alternatives()
	require.True(t, ok)
	require.Len(t, alternatives, 2)
	require.Equal(t, 4, alternatives[0].Min)
	require.Equal(t, 4, alternatives[0].Max)
	require.Equal(t, 16, alternatives[1].Min)
	require.False(t, alternatives[1].MaxInclusive)
}

func TestCountDecodeInvalidRange(t *testing.T) {
	t.Parallel()

	var count Count
	require.Error(t, yaml.Unmarshal([]byte("min: 10\nmax: 2\n"), &count))
}

func TestCountAbsentStaysUnset(t *testing.T) {
	t.Parallel()

	var node NodeRequirement
	require.NoError(t, yaml.Unmarshal([]byte("name: worker\n"), &node))
	require.False(t, node.CoreCount.Space().IsSet())
}

func TestOptionsDecodeScalar(t *testing.T) {
	t.Parallel()

	var options Options[string]
	require.NoError(t, yaml.Unmarshal([]byte(`Sriov`), &options))

	set := options.Set()
	require.NotNil(t, set)
	require.True(t, set.IsAllowSet())
	single, ok := set.Single()
	require.True(t, ok)
	require.Equal(t, "Sriov", single)
}

func TestOptionsDecodeList(t *testing.T) {
	t.Parallel()

	var options Options[string]
	require.NoError(t, yaml.Unmarshal([]byte("- SCSI\n- NVME\n"), &options))

	set := options.Set()
	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains("SCSI"))
	require.True(t, set.Contains("NVME"))
}

func TestOptionsDecodeExclusion(t *testing.T) {
	t.Parallel()

	var options Options[string]
	data := "allow: false\nitems:\n  - Ephemeral\n"
	require.NoError(t, yaml.Unmarshal([]byte(data), &options))

	set := options.Set()
	require.False(t, set.IsAllowSet())
	require.True(t, set.Contains("Ephemeral"))
}

func TestSetAsConvertsType(t *testing.T) {
	t.Parallel()

	var options Options[string]
	require.NoError(t, yaml.Unmarshal([]byte("- StandardSSDLRS\n"), &options))

	set := SetAs[string](options)
	require.True(t, set.Contains("StandardSSDLRS"))
	require.Nil(t, SetAs[string](Options[string]{}))
}
