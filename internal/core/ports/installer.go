// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lockstep/internal/core/domain"
)

// Installer defines the interface for invoking the package manager.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install runs the configured package manager in the workspace root with the
	// resolved options. It returns domain.ErrBackendFailed when the package manager
	// exits unsuccessfully.
	Install(ctx context.Context, cfg *domain.Configuration, opts domain.InstallOptions) error
}
