package checker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/internal/adapters/semver"
	"go.trai.ch/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the checker Graft node.
const NodeID graft.ID = "engine.checker"

func init() {
	graft.Register(graft.Node[*Checker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{semver.NodeID},
		Run: func(ctx context.Context) (*Checker, error) {
			matcher, err := graft.Dep[ports.RangeMatcher](ctx)
			if err != nil {
				return nil, err
			}
			return New(matcher), nil
		},
	})
}
