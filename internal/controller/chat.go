package controller

import (
	"context"
	"strings"

	"github.com/sharetube/partyclient/internal/protocol"
)

// SendChat shows the message locally right away and sends it to the room.
// Sends closer than the send interval to the previous one are refused.
func (c *Controller) SendChat(ctx context.Context, text string) {
	c.post(func() {
		message := strings.TrimSpace(text)
		if message == "" {
			return
		}

		if !c.limiter.Allow() {
			c.view.Notify(NoticeChatRateLimited)
			return
		}

		c.view.AppendChat(c.session.UserID, message)
		c.send(ctx, protocol.NewChat(c.session.UserID, message))
	})
}

func (c *Controller) SendEmoji(ctx context.Context, emoji string) {
	c.post(func() {
		if !c.limiter.Allow() {
			c.view.Notify(NoticeEmojiRateLimited)
			return
		}

		c.view.AppendChat(c.session.UserID, emoji)
		c.send(ctx, protocol.NewEmoji(c.session.UserID, emoji))
	})
}
