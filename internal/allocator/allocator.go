// Package allocator places requirement documents onto catalog capabilities.
// Candidates are filtered by check, ordered by cost, and the cheapest match
// is pinned through minimal-capability generation.
package allocator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/envmatch/envmatch/internal/catalog"
	"github.com/envmatch/envmatch/internal/logger"
	"github.com/envmatch/envmatch/internal/nodespec"
	"github.com/envmatch/envmatch/internal/searchspace"
	envmatcherrors "github.com/envmatch/envmatch/pkg/errors"
)

// Allocator matches requirements against one catalog.
type Allocator struct {
	catalog *catalog.Catalog
	log     *logger.Logger
}

// New builds an allocator. A nil logger disables logging.
func New(cat *catalog.Catalog, log *logger.Logger) *Allocator {
	if log == nil {
		log = logger.Nop()
	}
	return &Allocator{catalog: cat, log: log}
}

// Match is one placed node: the capability that satisfied the requirement and
// the pinned minimal configuration to provision.
type Match struct {
	Requirement *nodespec.NodeSpec
	Capability  *nodespec.NodeSpec
	Pinned      *nodespec.NodeSpec
}

// Allocation is the result of placing a whole document.
type Allocation struct {
	ID    string
	Nodes []Match
}

// Candidates returns the capabilities that satisfy the requirement, cheapest
// first, along with one reason per rejected entry.
func (a *Allocator) Candidates(requirement *nodespec.NodeSpec) ([]*nodespec.NodeSpec, []string) {
	var candidates []*nodespec.NodeSpec
	var rejections []string
	for _, capability := range a.catalog.All() {
		result := requirement.Check(capability)
		if result.OK() {
			candidates = append(candidates, capability)
			continue
		}
		rejections = append(rejections, fmt.Sprintf(
			"%s: %v", capability.Name, result.Reasons()))
	}
	// Stable sort keeps catalog order between equally priced SKUs.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Cost() < candidates[j].Cost()
	})
	return candidates, rejections
}

// Allocate places every node of every requirement onto the cheapest
// satisfying capability. Multi-node requirements expand to one match per
// node. Placement is independent per node; capacity tracking is up to the
// caller.
func (a *Allocator) Allocate(requirements []*nodespec.NodeSpec) (*Allocation, error) {
	allocation := &Allocation{ID: uuid.NewString()}
	log := a.log.WithField("allocation", allocation.ID)

	for i, requirement := range requirements {
		for _, node := range requirement.ExpandByNodeCount() {
			match, err := a.place(i, node, log)
			if err != nil {
				return nil, err
			}
			allocation.Nodes = append(allocation.Nodes, *match)
		}
	}
	log.WithField("nodes", len(allocation.Nodes)).Info("allocation complete")
	return allocation, nil
}

func (a *Allocator) place(index int, node *nodespec.NodeSpec, log *logger.Logger) (*Match, error) {
	candidates, rejections := a.Candidates(node)
	if len(candidates) == 0 {
		err := envmatcherrors.NewAllocationError(
			fmt.Sprintf("nodes[%d]", index), rejections)
		log.Error(err, "no capability matches")
		return nil, err
	}

	capability := candidates[0]
	pinned, err := node.GenerateMin(capability)
	if err != nil {
		return nil, err
	}
	if err := resolveDiskTier(node, capability, pinned); err != nil {
		return nil, err
	}
	log.WithFields(map[string]any{
		"requirement": fmt.Sprintf("nodes[%d]", index),
		"sku":         capability.Name,
		"cost":        pinned.Cost(),
	}).Debug("node placed")
	return &Match{Requirement: node, Capability: capability, Pinned: pinned}, nil
}

// resolveDiskTier replaces the pinned data disk counts with a concrete
// offering tier. Disk sizes and IOPS come in quantized steps, the exact
// values from min generation are rarely purchasable as-is.
func resolveDiskTier(node, capability, pinned *nodespec.NodeSpec) error {
	if node.Disk == nil || capability.Disk == nil || pinned.Disk == nil {
		return nil
	}
	chosen, ok := pinned.Disk.DataDiskType.Single()
	if !ok {
		return nil
	}
	tier, err := nodespec.ResolveDataDiskTier(
		nodespec.DefaultTierTable, chosen, node.Disk, capability.Disk)
	if err != nil {
		return err
	}
	if tier.IOPS > 0 {
		pinned.Disk.DataDiskIOPS = searchspace.ExactCount(tier.IOPS)
		pinned.Disk.DataDiskSizeGB = searchspace.ExactCount(tier.SizeGB)
	}
	return nil
}
