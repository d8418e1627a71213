package cmdkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	name string
	runs int
	err  error
}

func (f *fakeCommand) Name() string        { return f.name }
func (f *fakeCommand) Description() string { return "fake" }
func (f *fakeCommand) Run(ctx context.Context, inv *Invocation) error {
	f.runs++
	return f.err
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeCommand{name: "beta"})
	r.Register(&fakeCommand{name: "alpha"})

	assert.Nil(t, r.Get("missing"))
	require.NotNil(t, r.Get("alpha"))

	all := r.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "beta", all[1].Name())
}

func TestRegistryReplacesSameName(t *testing.T) {
	r := NewRegistry()
	first := &fakeCommand{name: "dup"}
	second := &fakeCommand{name: "dup"}
	r.Register(first)
	r.Register(second)

	require.Len(t, r.GetAll(), 1)
	assert.Same(t, Command(second), r.Get("dup"))
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(c Command) Command {
			return Wrap(c, func(ctx context.Context, inv *Invocation) error {
				order = append(order, tag)
				return c.Run(ctx, inv)
			})
		}
	}

	inner := &fakeCommand{name: "chained"}
	c := Apply(inner, mw("first"), mw("second"))

	require.NoError(t, c.Run(context.Background(), &Invocation{}))
	// Apply wraps left to right, so the last middleware runs first.
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Equal(t, 1, inner.runs)
}

func TestWrapDelegatesIdentity(t *testing.T) {
	inner := &fakeCommand{name: "identity", err: errors.New("boom")}
	c := Wrap(inner, nil)

	assert.Equal(t, "identity", c.Name())
	assert.Equal(t, "fake", c.Description())
	assert.Error(t, c.Run(context.Background(), &Invocation{}))
}

func TestRootUnwrapsChain(t *testing.T) {
	inner := &fakeCommand{name: "root"}
	c := Apply(inner,
		func(c Command) Command { return Wrap(c, nil) },
		func(c Command) Command { return Wrap(c, nil) },
	)

	assert.Same(t, Command(inner), Root(c))
	assert.Same(t, Command(inner), Root(inner))
}
