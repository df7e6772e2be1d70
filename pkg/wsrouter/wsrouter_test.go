package wsrouter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seekPayload struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
}

func TestServeMessageRoutesByType(t *testing.T) {
	r := New()

	var got seekPayload
	var gotType string
	Handle(r, "seek", func(ctx context.Context, payload seekPayload) error {
		got = payload
		gotType = GetMessageTypeFromCtx(ctx)
		return nil
	})

	err := r.ServeMessage(context.Background(), []byte(`{"type":"seek","position":42}`))
	require.NoError(t, err)
	assert.Equal(t, 42, got.Position)
	assert.Equal(t, "seek", gotType)
}

func TestServeMessageUnknownType(t *testing.T) {
	r := New()

	err := r.ServeMessage(context.Background(), []byte(`{"type":"sync_response"}`))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestServeMessageMalformed(t *testing.T) {
	r := New()
	Handle(r, "seek", func(context.Context, seekPayload) error { return nil })

	assert.ErrorIs(t, r.ServeMessage(context.Background(), []byte(`not json`)), ErrMalformedMessage)
	assert.ErrorIs(t, r.ServeMessage(context.Background(), []byte(`{"type":"seek","position":"x"}`)), ErrMalformedMessage)
}

func TestMiddlewareOrder(t *testing.T) {
	r := New()

	var calls []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc[any]) HandlerFunc[any] {
			return func(ctx context.Context, payload any) error {
				calls = append(calls, name)
				return next(ctx, payload)
			}
		}
	}
	r.Use(mw("first"), mw("second"))
	Handle(r, "seek", func(context.Context, seekPayload) error {
		calls = append(calls, "handler")
		return nil
	})

	require.NoError(t, r.ServeMessage(context.Background(), []byte(`{"type":"seek","position":1}`)))
	assert.Equal(t, []string{"first", "second", "handler"}, calls)
}

func TestGetMessageTypeFromEmptyCtx(t *testing.T) {
	assert.Equal(t, "", GetMessageTypeFromCtx(context.Background()))
}
