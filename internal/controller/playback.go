package controller

import (
	"context"

	"github.com/sharetube/partyclient/internal/domain"
	"github.com/sharetube/partyclient/internal/protocol"
)

func (c *Controller) TogglePlayPause(ctx context.Context) {
	c.post(func() {
		isPlaying := c.player.Toggle()
		c.view.SetPlaying(isPlaying)
		c.send(ctx, protocol.NewPlayPause(isPlaying, c.player.Position))
	})
}

// Seek jumps to fraction of the duration. Fractions outside [0, 1] are
// applied as is.
func (c *Controller) Seek(ctx context.Context, fraction float64) {
	c.post(func() {
		position := c.player.Seek(fraction)
		c.refreshProgress()
		c.send(ctx, protocol.NewSeek(position))
	})
}

// SeekClick seeks to a pointer offset inside a progress bar of width units.
func (c *Controller) SeekClick(ctx context.Context, offsetX, width float64) {
	c.Seek(ctx, domain.SeekFraction(offsetX, width))
}

// Sync asks the room for its playback state. The confirmation label is shown
// for two seconds whether or not anyone answers.
func (c *Controller) Sync(ctx context.Context) {
	c.post(func() {
		c.send(ctx, protocol.NewSyncRequest(c.session.UserID))
		c.view.SetSyncConfirmed(true)
		c.clock.AfterFunc(syncLabelDuration, func() {
			c.post(func() {
				c.view.SetSyncConfirmed(false)
			})
		})
	})
}

func (c *Controller) refreshProgress() {
	c.view.SetProgress(c.player.Progress(), c.player.Label())
}
