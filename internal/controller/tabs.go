package controller

import "github.com/sharetube/partyclient/internal/domain"

func (c *Controller) SelectTab(tab domain.Tab) {
	c.post(func() {
		c.activeTab = tab
		c.view.SetActiveTab(tab)
	})
}

// ConnectionChanged reflects the channel state in the view.
func (c *Controller) ConnectionChanged(connected bool) {
	c.post(func() {
		c.view.SetConnected(connected)
	})
}
