package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/envmatch/envmatch/internal/catalog"
	"github.com/envmatch/envmatch/internal/nodespec"
	"github.com/envmatch/envmatch/internal/searchspace"
	envmatcherrors "github.com/envmatch/envmatch/pkg/errors"
)

const testCatalog = `version: "1.0"
skus:
  - name: Standard_D2_v5
    core_count: 2
    memory_mb: 8192
  - name: Standard_D8_v5
    core_count: 8
    memory_mb: 32768
  - name: Standard_NC4
    core_count: 4
    memory_mb: 28672
    gpu_count: 1
    features:
      - type: gpu
  - name: Standard_E4_v5
    core_count: 4
    memory_mb: 32768
    disk:
      data_disk_type:
        - StandardSSDLRS
        - PremiumSSDLRS
      data_disk_count:
        min: 0
        max: 8
      data_disk_iops:
        min: 0
      data_disk_size_gb:
        min: 0
      max_data_disk_count: 8
`

func testAllocator(t *testing.T) *Allocator {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	return New(cat, nil)
}

func TestCandidatesOrderedByCost(t *testing.T) {
	t.Parallel()

	requirement := &nodespec.NodeSpec{
		NodeCount: searchspace.ExactCount(1),
		CoreCount: searchspace.RangeCount(searchspace.AtLeast(2)),
	}
	candidates, rejections := testAllocator(t).Candidates(requirement)

	require.Len(t, candidates, 4)
	require.Equal(t, "Standard_D2_v5", candidates[0].Name)
	require.Equal(t, "Standard_E4_v5", candidates[1].Name)
	require.Equal(t, "Standard_D8_v5", candidates[2].Name)
	// The GPU makes the four-core SKU the most expensive.
	require.Equal(t, "Standard_NC4", candidates[3].Name)
	require.Empty(t, rejections)
}

func TestCandidatesRejectionsCarryReasons(t *testing.T) {
	t.Parallel()

	requirement := &nodespec.NodeSpec{
		NodeCount: searchspace.ExactCount(1),
		CoreCount: searchspace.RangeCount(searchspace.AtLeast(4)),
	}
	candidates, rejections := testAllocator(t).Candidates(requirement)

	require.Len(t, candidates, 3)
	require.Len(t, rejections, 1)
	require.Contains(t, rejections[0], "Standard_D2_v5")
	require.Contains(t, rejections[0], "core_count")
}

func TestAllocatePinsCheapestMatch(t *testing.T) {
	t.Parallel()

	requirements := []*nodespec.NodeSpec{
		{
			NodeCount: searchspace.ExactCount(1),
			CoreCount: searchspace.RangeCount(searchspace.Between(4, 16)),
			MemoryMB:  searchspace.RangeCount(searchspace.AtLeast(16384)),
		},
	}
	allocation, err := testAllocator(t).Allocate(requirements)
	require.NoError(t, err)
	require.NotEmpty(t, allocation.ID)
	require.Len(t, allocation.Nodes, 1)

	match := allocation.Nodes[0]
	require.Equal(t, "Standard_E4_v5", match.Capability.Name)
	cores, ok := match.Pinned.CoreCount.Exact()
	require.True(t, ok)
	require.Equal(t, 4, cores)
}

func TestAllocateExpandsNodeCount(t *testing.T) {
	t.Parallel()

	requirements := []*nodespec.NodeSpec{
		{
			NodeCount: searchspace.ExactCount(3),
			CoreCount: searchspace.RangeCount(searchspace.AtLeast(1)),
		},
	}
	allocation, err := testAllocator(t).Allocate(requirements)
	require.NoError(t, err)
	require.Len(t, allocation.Nodes, 3)
	for _, match := range allocation.Nodes {
		require.Equal(t, "Standard_D2_v5", match.Capability.Name)
	}
}

func TestAllocateGpuRequirement(t *testing.T) {
	t.Parallel()

	requirements := []*nodespec.NodeSpec{
		{
			NodeCount: searchspace.ExactCount(1),
			GPUCount:  searchspace.RangeCount(searchspace.AtLeast(1)),
		},
	}
	allocation, err := testAllocator(t).Allocate(requirements)
	require.NoError(t, err)
	require.Equal(t, "Standard_NC4", allocation.Nodes[0].Capability.Name)
}

func TestAllocateResolvesDiskTier(t *testing.T) {
	t.Parallel()

	requirements := []*nodespec.NodeSpec{
		{
			NodeCount: searchspace.ExactCount(1),
			Disk: &nodespec.DiskOptions{
				DataDiskType: searchspace.AllowOnly(
					nodespec.DiskStandardSSD, nodespec.DiskPremiumSSD),
				DataDiskCount: searchspace.ExactCount(2),
				DataDiskIOPS:  searchspace.RangeCount(searchspace.AtLeast(600)),
			},
		},
	}
	allocation, err := testAllocator(t).Allocate(requirements)
	require.NoError(t, err)

	pinned := allocation.Nodes[0].Pinned
	require.Equal(t, "Standard_E4_v5", allocation.Nodes[0].Capability.Name)
	iops, ok := pinned.Disk.DataDiskIOPS.Exact()
	require.True(t, ok)
	require.Equal(t, 2000, iops)
	size, ok := pinned.Disk.DataDiskSizeGB.Exact()
	require.True(t, ok)
	require.Equal(t, 8192, size)
}

func TestAllocateNoMatch(t *testing.T) {
	t.Parallel()

	requirements := []*nodespec.NodeSpec{
		{
			NodeCount: searchspace.ExactCount(1),
			CoreCount: searchspace.RangeCount(searchspace.AtLeast(64)),
		},
	}
	_, err := testAllocator(t).Allocate(requirements)

	var allocErr *envmatcherrors.AllocationError
	require.ErrorAs(t, err, &allocErr)
	require.Equal(t, "nodes[0]", allocErr.Requirement)
	require.Len(t, allocErr.Reasons, 4)
}
