package cmdkit

import "context"

// Middleware wraps a command with extra behavior (logging, access checks,
// cooldowns). The wrapped value is still a Command.
type Middleware func(Command) Command

// Apply applies middlewares in order; the last in the list ends up outermost
// and therefore runs first.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Unwrappable is implemented by wrapped commands so adapters can reach the
// underlying command, e.g. to type-assert against provider interfaces.
type Unwrappable interface {
	Command
	Unwrap() Command
}

type wrapped struct {
	inner   Command
	runFunc func(ctx context.Context, inv *Invocation) error
}

func (w *wrapped) Name() string        { return w.inner.Name() }
func (w *wrapped) Description() string { return w.inner.Description() }

func (w *wrapped) Run(ctx context.Context, inv *Invocation) error {
	if w.runFunc != nil {
		return w.runFunc(ctx, inv)
	}
	return w.inner.Run(ctx, inv)
}

func (w *wrapped) Unwrap() Command { return w.inner }

// Wrap returns a command that runs run instead of c.Run, delegating
// Name/Description to c. The result implements Unwrappable.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	return &wrapped{inner: c, runFunc: run}
}

// Root unwraps a command chain down to the innermost command.
func Root(c Command) Command {
	for {
		u, ok := c.(Unwrappable)
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}
