package semver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the range matcher Graft node.
const NodeID graft.ID = "adapter.semver"

func init() {
	graft.Register(graft.Node[ports.RangeMatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.RangeMatcher, error) {
			return NewMatcher(), nil
		},
	})
}
