package domain

import "math"

const DefaultDuration = 7200

// Player is the local playback state. Position is not clamped to
// [0, Duration]: remote updates and seeks are applied as received.
type Player struct {
	Position  int
	Duration  int
	IsPlaying bool
}

func NewPlayer(duration int) *Player {
	return &Player{
		Position:  0,
		Duration:  duration,
		IsPlaying: false,
	}
}

// Toggle flips the play state and returns the new one.
func (p *Player) Toggle() bool {
	p.IsPlaying = !p.IsPlaying
	return p.IsPlaying
}

// Tick advances the position by one second while playing.
func (p *Player) Tick() bool {
	if !p.IsPlaying {
		return false
	}

	p.Position++
	return true
}

// Seek moves to floor(fraction * Duration) and returns the new position.
func (p *Player) Seek(fraction float64) int {
	p.Position = int(math.Floor(fraction * float64(p.Duration)))
	return p.Position
}

// Apply overwrites the local state with a remote update.
func (p *Player) Apply(isPlaying bool, position int) {
	p.IsPlaying = isPlaying
	p.Position = position
}

// Progress returns the position as a percentage of the duration.
func (p *Player) Progress() float64 {
	if p.Duration == 0 {
		return 0
	}

	return float64(p.Position) / float64(p.Duration) * 100
}

func (p *Player) Label() string {
	return FormatTime(p.Position) + " / " + FormatTime(p.Duration)
}

// SeekFraction converts a pointer offset inside a bar of the given width into
// a fraction of the bar. Offsets outside the bar give fractions outside [0, 1].
func SeekFraction(offsetX, width float64) float64 {
	if width == 0 {
		return 0
	}

	return offsetX / width
}
