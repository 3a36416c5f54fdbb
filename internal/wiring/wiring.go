// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lockstep/internal/adapters/config"
	_ "go.trai.ch/lockstep/internal/adapters/ledger"
	_ "go.trai.ch/lockstep/internal/adapters/lockfile"
	_ "go.trai.ch/lockstep/internal/adapters/logger"
	_ "go.trai.ch/lockstep/internal/adapters/semver"
	_ "go.trai.ch/lockstep/internal/adapters/shell"
	_ "go.trai.ch/lockstep/internal/adapters/telemetry"
	_ "go.trai.ch/lockstep/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/lockstep/internal/app"
	_ "go.trai.ch/lockstep/internal/engine/checker"
	_ "go.trai.ch/lockstep/internal/engine/policy"
)
