// Package session owns the authenticated-session state machine: a durable
// key-value store for the serialized record, the manager that gates all
// transitions, a multicast stream of session state, and the route guard.
package session

import "context"

// Store is durable key-value storage for the serialized session record.
// Get returns (nil, nil) when the key is absent. Writes are whole-record
// replace; the manager is the only writer.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
