package policy

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.policy"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})
}
