package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/internal/adapters/config"
	"go.trai.ch/lockstep/internal/adapters/ledger"
	"go.trai.ch/lockstep/internal/adapters/lockfile"
	"go.trai.ch/lockstep/internal/adapters/logger"
	"go.trai.ch/lockstep/internal/adapters/shell"
	"go.trai.ch/lockstep/internal/adapters/telemetry"
	"go.trai.ch/lockstep/internal/adapters/watcher"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/lockstep/internal/engine/checker"
	"go.trai.ch/lockstep/internal/engine/policy"
)

// AppNodeID is the unique identifier for the application Graft node.
const AppNodeID graft.ID = "app.main"

// ComponentsNodeID is the unique identifier for the components Graft node.
const ComponentsNodeID graft.ID = "app.components"

// Components bundles what the command line needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			shell.NodeID,
			ledger.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			checker.NodeID,
			policy.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}
			changes, err := graft.Dep[ports.ChangeWriter](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			chk, err := graft.Dep[*checker.Checker](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*policy.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, store, installer, changes, w, log, tracer, chk, resolver), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}
