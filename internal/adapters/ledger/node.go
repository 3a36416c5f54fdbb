package ledger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the change writer Graft node.
const NodeID graft.ID = "adapter.ledger"

func init() {
	graft.Register(graft.Node[ports.ChangeWriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ChangeWriter, error) {
			return NewWriter(), nil
		},
	})
}
