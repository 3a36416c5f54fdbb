package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/internal/adapters/detector"
	"go.trai.ch/lockstep/internal/adapters/logger"
	"go.trai.ch/lockstep/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(log, WithTerminal(detector.Resolve())), nil
		},
	})
}
