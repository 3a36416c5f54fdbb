package ports

import "context"

// Watcher defines the interface for observing workspace files.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch starts observing paths and returns a channel of coalesced batches of the
	// paths that changed. The channel is closed once ctx is done.
	Watch(ctx context.Context, paths []string) (<-chan []string, error)
}
