package sql

import "context"

// Database is a raw connection used for liveness probing.
type Database interface {
	Open(ctx context.Context) error
	Close()
	Ping(ctx context.Context) error
}
