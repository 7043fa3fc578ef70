package handler_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/handlerx/handler"
)

type ctxKey struct{}

// tracer records the order in which wrappers are entered and left.
type tracer struct {
	steps []string
}

func (tr *tracer) mw(name string) handler.WrapFunc[string, string] {
	return func(next handler.Handler[string, string]) handler.Handler[string, string] {
		return handler.HandlerFunc[string, string](func(ctx context.Context, event string) (string, error) {
			tr.steps = append(tr.steps, "enter "+name)
			res, err := next.Handle(ctx, event)
			tr.steps = append(tr.steps, "leave "+name)
			return res + name, err
		})
	}
}

func (tr *tracer) handler() handler.Handler[string, string] {
	return handler.HandlerFunc[string, string](func(_ context.Context, event string) (string, error) {
		tr.steps = append(tr.steps, "handle")
		return event + ":", nil
	})
}

func TestCompose_RightToLeft(t *testing.T) {
	tr := &tracer{}

	h := handler.Compose(tr.mw("a"), tr.mw("b"), tr.mw("c"))(tr.handler())

	res, err := h.Handle(t.Context(), "x")
	require.NoError(t, err)

	assert.Equal(t, "x:cba", res)
	assert.Equal(t, []string{
		"enter a", "enter b", "enter c", "handle", "leave c", "leave b", "leave a",
	}, tr.steps)
}

func TestCompose_EquivalentToNesting(t *testing.T) {
	tr1, tr2 := &tracer{}, &tracer{}

	composed := handler.Compose(tr1.mw("a"), tr1.mw("b"))(tr1.handler())
	nested := tr2.mw("a")(tr2.mw("b")(tr2.handler()))

	r1, err1 := composed.Handle(t.Context(), "e")
	r2, err2 := nested.Handle(t.Context(), "e")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r2, r1)
	assert.Equal(t, tr2.steps, tr1.steps)
}

func TestCompose_Empty(t *testing.T) {
	tr := &tracer{}
	inner := tr.handler()

	h := handler.Compose[string, string]()(inner)

	res, err := h.Handle(t.Context(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x:", res)
	assert.Equal(t, []string{"handle"}, tr.steps)
}

func TestCompose_SkipsNil(t *testing.T) {
	tr := &tracer{}

	h := handler.Compose[string, string](nil, tr.mw("a"), nil)(tr.handler())

	res, err := h.Handle(t.Context(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x:a", res)
}

func TestCompose_Associative(t *testing.T) {
	tr1, tr2 := &tracer{}, &tracer{}

	left := handler.Compose(handler.Compose(tr1.mw("a"), tr1.mw("b")), tr1.mw("c"))(tr1.handler())
	right := handler.Compose(tr2.mw("a"), handler.Compose(tr2.mw("b"), tr2.mw("c")))(tr2.handler())

	r1, _ := left.Handle(t.Context(), "x")
	r2, _ := right.Handle(t.Context(), "x")

	assert.Equal(t, r1, r2)
	assert.Equal(t, tr1.steps, tr2.steps)
}

func TestCompose_PassesContextThrough(t *testing.T) {
	tr := &tracer{}
	var seen any

	inner := handler.HandlerFunc[string, string](func(ctx context.Context, _ string) (string, error) {
		seen = ctx.Value(ctxKey{})
		return "", nil
	})

	ctx := context.WithValue(t.Context(), ctxKey{}, "invocation-1")
	_, err := handler.Apply[string, string](inner, tr.mw("a"), tr.mw("b")).Handle(ctx, "x")

	require.NoError(t, err)
	assert.Equal(t, "invocation-1", seen)
}

func TestThen_ChangesTypes(t *testing.T) {
	// string -> int on the way in
	parse := handler.Middleware[string, int, int, int](
		func(next handler.Handler[int, int]) handler.Handler[string, int] {
			return handler.HandlerFunc[string, int](func(ctx context.Context, event string) (int, error) {
				n, err := strconv.Atoi(event)
				if err != nil {
					return 0, err
				}
				return next.Handle(ctx, n)
			})
		},
	)
	// int -> string on the way out
	format := handler.Middleware[int, int, int, string](
		func(next handler.Handler[int, string]) handler.Handler[int, int] {
			return handler.HandlerFunc[int, int](func(ctx context.Context, event int) (int, error) {
				s, err := next.Handle(ctx, event)
				if err != nil {
					return 0, err
				}
				return len(s), nil
			})
		},
	)

	inner := handler.HandlerFunc[int, string](func(_ context.Context, n int) (string, error) {
		return strconv.Itoa(n * 1000), nil
	})

	h := handler.Then(parse, format)(inner)

	res, err := h.Handle(t.Context(), "42")
	require.NoError(t, err)
	assert.Equal(t, 5, res) // "42000"

	_, err = h.Handle(t.Context(), "nan")
	require.Error(t, err)
}

func TestIdentity(t *testing.T) {
	tr := &tracer{}
	inner := tr.handler()

	res, err := handler.Identity[string, string]()(inner).Handle(t.Context(), "x")

	require.NoError(t, err)
	assert.Equal(t, "x:", res)
	assert.Equal(t, []string{"handle"}, tr.steps)
}
