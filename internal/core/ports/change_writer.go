package ports

import "go.trai.ch/lockstep/internal/core/domain"

// ChangeWriter defines the interface for persisting change files.
//
//go:generate mockgen -source=change_writer.go -destination=mocks/mock_change_writer.go -package=mocks
type ChangeWriter interface {
	// Write stores change under the workspace root and returns the path written.
	Write(root string, change domain.ChangeFile) (string, error)
}
