// Package cmdkit is a transport-agnostic command core: a command has a name,
// a description, and Run(ctx, invocation). Registration and dispatch (Discord
// slash, CLI, HTTP) belong to adapters built on top of it.
package cmdkit

import "context"

// Invocation is the minimal input a runner passes to a command: positional
// arguments plus an opaque payload. Adapters put their own context into Data
// (for Discord that is one of the typed interaction contexts).
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract. Permissions, option schemas, and
// transport registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
