package domain

import (
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{7200, "02:00:00"},
		{36000 + 59*60 + 59, "10:59:59"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestPlayerSeekFloorsFraction(t *testing.T) {
	p := NewPlayer(7200)

	for i := 0; i <= 1000; i++ {
		f := float64(i) / 1000
		want := int(math.Floor(f * 7200))
		assert.Equal(t, want, p.Seek(f), "fraction=%v", f)
		assert.Equal(t, want, p.Position)
	}

	assert.Equal(t, 7200, p.Seek(1))
}

func TestPlayerSeekOutsideBarIsNotClamped(t *testing.T) {
	p := NewPlayer(7200)

	assert.Equal(t, 10800, p.Seek(1.5))
	assert.Equal(t, -1800, p.Seek(-0.25))
}

func TestSeekFraction(t *testing.T) {
	assert.InDelta(t, 0.25, SeekFraction(50, 200), 1e-9)
	assert.InDelta(t, 1.1, SeekFraction(220, 200), 1e-9)
	assert.Equal(t, 0.0, SeekFraction(10, 0))
}

func TestPlayerTickOnlyWhilePlaying(t *testing.T) {
	p := NewPlayer(7200)

	assert.False(t, p.Tick())
	assert.Equal(t, 0, p.Position)

	require.True(t, p.Toggle())
	assert.True(t, p.Tick())
	assert.True(t, p.Tick())
	assert.Equal(t, 2, p.Position)

	require.False(t, p.Toggle())
	assert.False(t, p.Tick())
	assert.Equal(t, 2, p.Position)
}

func TestPlayerApplyIsIdempotent(t *testing.T) {
	p := NewPlayer(7200)
	p.Toggle()

	p.Apply(false, 500)
	p.Apply(false, 500)
	assert.False(t, p.IsPlaying)
	assert.Equal(t, 500, p.Position)
}

func TestPlayerProgressAndLabel(t *testing.T) {
	p := NewPlayer(7200)
	p.Position = 3600

	assert.InDelta(t, 50.0, p.Progress(), 1e-9)
	assert.Equal(t, "01:00:00 / 02:00:00", p.Label())
	assert.Equal(t, 0.0, NewPlayer(0).Progress())
}

func TestSendLimiter(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewSendLimiter(clock, DefaultSendInterval)

	require.True(t, l.Allow())

	clock.Advance(1999 * time.Millisecond)
	assert.False(t, l.Allow())

	clock.Advance(time.Millisecond)
	assert.True(t, l.Allow())

	clock.Advance(500 * time.Millisecond)
	assert.False(t, l.Allow())
	clock.Advance(1500 * time.Millisecond)
	assert.True(t, l.Allow())
}

func TestCountdown(t *testing.T) {
	c := NewCountdown(2)
	assert.Equal(t, "00:00:02", c.Label())

	c.Tick()
	assert.Equal(t, "00:00:01", c.Label())
	assert.False(t, c.Started())

	c.Tick()
	assert.True(t, c.Started())
	assert.Equal(t, CountdownStarted, c.Label())

	c.Tick()
	assert.Equal(t, CountdownStarted, c.Label())
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("vote")
	require.NoError(t, err)
	assert.Equal(t, TabVote, tab)

	_, err = ParseTab("settings")
	assert.ErrorIs(t, err, ErrUnknownTab)
}
