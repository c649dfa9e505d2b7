package storage

import "context"

// Backend is the durable-storage contract every adapter implements. A
// snapshot is a single opaque blob: Write replaces whatever was stored
// before, Load returns the most recently written content. Loading before
// anything was written fails; there is no implicit empty default.
//
// Backends compose: the replicated backend both consumes and implements
// this interface, so replicas can themselves be replicated.
type Backend interface {
	Write(ctx context.Context, content []byte) error
	Load(ctx context.Context) ([]byte, error)
}
