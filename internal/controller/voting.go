package controller

import (
	"context"

	"github.com/sharetube/partyclient/internal/repository/rest"
)

func (c *Controller) LoadCandidates(ctx context.Context) {
	c.post(func() {
		c.loadCandidates(ctx)
	})
}

func (c *Controller) Vote(ctx context.Context, contentID string) {
	c.post(func() {
		params := &rest.CastVoteParams{
			RoomID:    c.session.RoomID,
			ContentID: contentID,
			UserID:    c.session.UserID,
		}

		c.spawn(func() {
			if err := c.repo.CastVote(ctx, params); err != nil {
				c.logger.WarnContext(ctx, "failed to vote", "content_id", contentID, "error", err)
				return
			}

			c.post(func() {
				c.view.Notify(NoticeVoteRecorded)
				c.loadTally(ctx)
			})
		})
	})
}

func (c *Controller) LoadTally(ctx context.Context) {
	c.post(func() {
		c.loadTally(ctx)
	})
}

func (c *Controller) loadCandidates(ctx context.Context) {
	roomID := c.session.RoomID

	c.spawn(func() {
		candidates, err := c.repo.GetCandidates(ctx, roomID)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to load candidates", "error", err)
			return
		}

		c.post(func() {
			c.view.RenderCandidates(candidates)
		})
	})
}

func (c *Controller) loadTally(ctx context.Context) {
	roomID := c.session.RoomID

	c.spawn(func() {
		tally, err := c.repo.GetTally(ctx, roomID)
		if err != nil {
			c.logger.WarnContext(ctx, "failed to load tally", "error", err)
			return
		}

		c.post(func() {
			c.view.RenderTally(tally)
		})
	})
}
