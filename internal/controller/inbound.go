package controller

import (
	"context"
	"log/slog"

	"github.com/sharetube/partyclient/internal/protocol"
	"github.com/sharetube/partyclient/pkg/ctxlogger"
	"github.com/sharetube/partyclient/pkg/wsrouter"
)

func (c *Controller) initWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Use(c.loggerWSMw())

	// chat
	wsrouter.Handle(mux, string(protocol.TypeChat), c.handleChat)
	wsrouter.Handle(mux, string(protocol.TypeEmoji), c.handleEmoji)

	// player
	wsrouter.Handle(mux, string(protocol.TypePlayPause), c.handlePlayPause)
	wsrouter.Handle(mux, string(protocol.TypeSeek), c.handleSeek)

	return mux
}

func (c *Controller) loggerWSMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[any]) wsrouter.HandlerFunc[any] {
		return func(ctx context.Context, payload any) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)))
			c.logger.DebugContext(ctx, "websocket message received", "payload", payload)

			return next(ctx, payload)
		}
	}
}

// HandleMessage applies one inbound frame on the controller goroutine.
// Unknown and malformed frames are ignored.
func (c *Controller) HandleMessage(ctx context.Context, data []byte) {
	c.post(func() {
		if err := c.wsmux.ServeMessage(ctx, data); err != nil {
			c.logger.DebugContext(ctx, "inbound message ignored", "error", err)
		}
	})
}

// Messages this client sent come back from the room as well and are shown
// again; there is no message id to match them against.
func (c *Controller) handleChat(_ context.Context, input protocol.ChatMessage) error {
	c.view.AppendChat(input.UserID, input.Message)
	return nil
}

func (c *Controller) handleEmoji(_ context.Context, input protocol.EmojiMessage) error {
	c.view.AppendChat(input.UserID, input.Emoji)
	return nil
}

// handlePlayPause and handleSeek overwrite the local state with whatever the
// room sent last.
func (c *Controller) handlePlayPause(_ context.Context, input protocol.PlayPauseMessage) error {
	c.player.Apply(input.Action == protocol.ActionPlay, input.Position.Seconds())
	c.view.SetPlaying(c.player.IsPlaying)
	c.refreshProgress()
	return nil
}

func (c *Controller) handleSeek(_ context.Context, input protocol.SeekMessage) error {
	c.player.Position = input.Position.Seconds()
	c.refreshProgress()
	return nil
}
