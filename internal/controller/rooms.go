package controller

import "context"

func (c *Controller) LoadRooms(ctx context.Context) {
	c.post(func() {
		c.spawn(func() {
			rooms, err := c.repo.GetRooms(ctx)
			if err != nil {
				c.logger.WarnContext(ctx, "failed to load rooms", "error", err)
				return
			}

			c.post(func() {
				c.view.RenderRooms(rooms)
			})
		})
	})
}
