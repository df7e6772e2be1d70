package terminal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sharetube/partyclient/internal/domain"
	"github.com/sharetube/partyclient/internal/repository/rest"
)

const (
	defaultCurrency = "₺"

	// progress is reprinted while playing once it moved this many percent
	progressStep = 1.0
)

type Options struct {
	Currency string
	NoColor  bool
}

// View renders the party as plain lines on w.
type View struct {
	mu       sync.Mutex
	w        io.Writer
	currency string
	noColor  bool
	positive *color.Color
	negative *color.Color

	playing       bool
	connected     bool
	activeTab     domain.Tab
	progressLabel string
	lastPercent   float64
	printedOnce   bool
	countdown     string
}

func NewView(w io.Writer, opts Options) *View {
	currency := opts.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	v := &View{
		w:        w,
		currency: currency,
		noColor:  opts.NoColor,
		positive: color.New(color.FgGreen),
		negative: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{v.positive, v.negative} {
		if opts.NoColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return v
}

func (v *View) printf(format string, args ...any) {
	fmt.Fprintf(v.w, format+"\n", args...)
}

func (v *View) SetActiveTab(tab domain.Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.activeTab = tab
	v.printf("[tab] %s", tab)
}

func (v *View) SetPlaying(isPlaying bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.playing = isPlaying
	v.printf("[player] %s", playGlyph(isPlaying))
}

func playGlyph(isPlaying bool) string {
	if isPlaying {
		return "⏸ Pause"
	}

	return "▶ Play"
}

// SetProgress prints every change while paused. While playing only jumps
// backwards and moves of at least progressStep percent are printed.
func (v *View) SetProgress(percent float64, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.progressLabel = label
	if v.playing && v.printedOnce && percent >= v.lastPercent && percent-v.lastPercent < progressStep {
		return
	}

	v.lastPercent = percent
	v.printedOnce = true
	v.printf("[player] %s (%.1f%%)", label, percent)
}

func (v *View) SetSyncConfirmed(confirmed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if confirmed {
		v.printf("[sync] ✓ Synchronized")
	}
}

// SetCountdown prints on whole minutes and once the party has started.
func (v *View) SetCountdown(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	changed := v.countdown != label
	v.countdown = label
	if !changed {
		return
	}

	if label == domain.CountdownStarted || strings.HasSuffix(label, ":00") {
		v.printf("[countdown] %s", label)
	}
}

func (v *View) SetConnected(connected bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.connected = connected
	if connected {
		v.printf("[room] connected")
	} else {
		v.printf("[room] disconnected, reconnecting")
	}
}

func (v *View) AppendChat(userID, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.printf("%s: %s", userID, text)
}

func (v *View) Notify(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.printf("! %s", message)
}

func (v *View) RenderCandidates(candidates json.RawMessage) {
	v.renderRaw("candidates", candidates)
}

func (v *View) RenderTally(tally json.RawMessage) {
	v.renderRaw("tally", tally)
}

func (v *View) RenderRooms(rooms json.RawMessage) {
	v.renderRaw("rooms", rooms)
}

func (v *View) renderRaw(title string, data json.RawMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		v.printf("[%s] %s", title, data)
		return
	}

	v.printf("[%s] %s", title, buf.String())
}

func (v *View) RenderExpenses(expenses []rest.Expense) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.printf("Expenses:")
	for _, expense := range expenses {
		v.printf("  %s  %s%s", expense.Note, v.currency, expense.Amount)
	}
}

func (v *View) RenderBalances(balances []rest.Balance) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.printf("Balances:")
	for _, balance := range balances {
		v.printf("  %s  %s", balance.UserID, v.colorize(isNonNegative(balance.Net), v.currency+balance.Net.String()))
	}
}

// isNonNegative reports the display sign of a net balance. Values that do
// not parse count as negative.
func isNonNegative(net json.Number) bool {
	value, err := net.Float64()
	if err != nil || math.IsNaN(value) {
		return false
	}

	return value >= 0
}

func (v *View) colorize(positive bool, s string) string {
	if v.noColor {
		if positive {
			return "+" + strings.TrimPrefix(s, "+")
		}
		return s
	}

	if positive {
		return v.positive.Sprint(s)
	}

	return v.negative.Sprint(s)
}

// ClearExpenseForm is a no-op: expenses are entered as one command line.
func (v *View) ClearExpenseForm() {}

// PrintStatus prints the last known state of every panel.
func (v *View) PrintStatus() {
	v.mu.Lock()
	defer v.mu.Unlock()

	connection := "disconnected"
	if v.connected {
		connection = "connected"
	}

	v.printf("[status] tab=%s room=%s player=%s %s countdown=%s",
		v.activeTab, connection, playGlyph(v.playing), v.progressLabel, v.countdown)
}
