package terminal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sharetube/partyclient/internal/domain"
	"github.com/sharetube/partyclient/internal/repository/rest"
	"github.com/stretchr/testify/assert"
)

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestViewPlayer(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, Options{NoColor: true})

	v.SetPlaying(true)
	v.SetProgress(0.0139, "00:00:01 / 02:00:00")
	v.SetProgress(0.0278, "00:00:02 / 02:00:00")
	v.SetProgress(50, "01:00:00 / 02:00:00")
	v.SetProgress(10, "00:12:00 / 02:00:00")
	v.SetPlaying(false)
	v.SetProgress(10.0139, "00:12:01 / 02:00:00")

	assert.Equal(t, []string{
		"[player] ⏸ Pause",
		"[player] 00:00:01 / 02:00:00 (0.0%)",
		"[player] 01:00:00 / 02:00:00 (50.0%)",
		"[player] 00:12:00 / 02:00:00 (10.0%)",
		"[player] ▶ Play",
		"[player] 00:12:01 / 02:00:00 (10.0%)",
	}, lines(&out))
}

func TestViewCountdown(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, Options{})

	v.SetCountdown("01:00:00")
	v.SetCountdown("00:59:59")
	v.SetCountdown("00:59:00")
	v.SetCountdown(domain.CountdownStarted)
	v.SetCountdown(domain.CountdownStarted)

	assert.Equal(t, []string{
		"[countdown] 01:00:00",
		"[countdown] 00:59:00",
		"[countdown] Started!",
	}, lines(&out))
}

func TestViewChatAndNotices(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, Options{})

	v.AppendChat("user_a", "hi")
	v.Notify("Expense added!")
	v.SetSyncConfirmed(true)
	v.SetSyncConfirmed(false)
	v.SetConnected(false)

	assert.Equal(t, []string{
		"user_a: hi",
		"! Expense added!",
		"[sync] ✓ Synchronized",
		"[room] disconnected, reconnecting",
	}, lines(&out))
}

func TestViewRawPanels(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, Options{})

	v.RenderCandidates(json.RawMessage("{\n  \"candidates\": []\n}"))
	v.RenderTally(json.RawMessage(`{"tally":[{"content_id":"c1","votes":"2"}]}`))

	assert.Equal(t, []string{
		`[candidates] {"candidates":[]}`,
		`[tally] {"tally":[{"content_id":"c1","votes":"2"}]}`,
	}, lines(&out))
}

func TestViewExpensesAndBalances(t *testing.T) {
	green := color.New(color.FgGreen)
	green.EnableColor()
	red := color.New(color.FgRed)
	red.EnableColor()

	var out bytes.Buffer
	v := NewView(&out, Options{})

	v.RenderExpenses([]rest.Expense{{Note: "pizza", Amount: "15.5"}})
	v.RenderBalances([]rest.Balance{
		{UserID: "user_a", Net: "7.75"},
		{UserID: "user_b", Net: "-7.75"},
		{UserID: "user_c", Net: "0.00"},
	})

	assert.Equal(t, []string{
		"Expenses:",
		"  pizza  ₺15.5",
		"Balances:",
		"  user_a  " + green.Sprint("₺7.75"),
		"  user_b  " + red.Sprint("₺-7.75"),
		"  user_c  " + green.Sprint("₺0.00"),
	}, lines(&out))
	assert.Contains(t, out.String(), "\x1b[32m")
}

func TestViewBalancesWithoutColor(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, Options{NoColor: true, Currency: "$"})

	v.RenderBalances([]rest.Balance{
		{UserID: "user_a", Net: "7.75"},
		{UserID: "user_b", Net: "-7.75"},
	})

	assert.Equal(t, "Balances:\n  user_a  +$7.75\n  user_b  $-7.75\n", out.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, isNonNegative("0"))
	assert.True(t, isNonNegative("12.5"))
	assert.False(t, isNonNegative("-0.01"))
	assert.False(t, isNonNegative("n/a"))
	assert.False(t, isNonNegative(""))
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, Options{})

	v.SetActiveTab(domain.TabVote)
	v.SetConnected(true)
	v.SetProgress(0, "00:00:00 / 02:00:00")
	v.SetCountdown("00:30:15")
	out.Reset()

	v.PrintStatus()
	assert.Equal(t,
		"[status] tab=vote room=connected player=▶ Play 00:00:00 / 02:00:00 countdown=00:30:15\n",
		out.String())
}
