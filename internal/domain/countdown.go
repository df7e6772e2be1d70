package domain

const (
	DefaultCountdown = 3600
	CountdownStarted = "Started!"
)

// Countdown counts the seconds left before the party starts.
type Countdown struct {
	remaining int
}

func NewCountdown(seconds int) *Countdown {
	return &Countdown{remaining: seconds}
}

func (c *Countdown) Tick() {
	c.remaining--
}

func (c *Countdown) Started() bool {
	return c.remaining <= 0
}

func (c *Countdown) Label() string {
	if c.Started() {
		return CountdownStarted
	}

	return FormatTime(c.remaining)
}
