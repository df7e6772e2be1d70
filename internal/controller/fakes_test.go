package controller

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sharetube/partyclient/internal/domain"
	"github.com/sharetube/partyclient/internal/repository/rest"
)

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
	BlockUntilContext(ctx context.Context, n int) error
}

type chatLine struct {
	UserID string
	Text   string
}

type progress struct {
	Percent float64
	Label   string
}

type fakeView struct {
	mu            sync.Mutex
	activeTab     domain.Tab
	playing       []bool
	progress      []progress
	syncConfirmed []bool
	countdown     string
	connected     []bool
	chat          []chatLine
	notices       []string
	candidates    []json.RawMessage
	tallies       []json.RawMessage
	rooms         []json.RawMessage
	expenses      [][]rest.Expense
	balances      [][]rest.Balance
	formCleared   int
}

func (v *fakeView) SetActiveTab(tab domain.Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeTab = tab
}

func (v *fakeView) SetPlaying(isPlaying bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = append(v.playing, isPlaying)
}

func (v *fakeView) SetProgress(percent float64, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, progress{Percent: percent, Label: label})
}

func (v *fakeView) SetSyncConfirmed(confirmed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.syncConfirmed = append(v.syncConfirmed, confirmed)
}

func (v *fakeView) SetCountdown(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.countdown = label
}

func (v *fakeView) SetConnected(connected bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.connected = append(v.connected, connected)
}

func (v *fakeView) AppendChat(userID, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chat = append(v.chat, chatLine{UserID: userID, Text: text})
}

func (v *fakeView) Notify(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, message)
}

func (v *fakeView) RenderCandidates(candidates json.RawMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.candidates = append(v.candidates, candidates)
}

func (v *fakeView) RenderTally(tally json.RawMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tallies = append(v.tallies, tally)
}

func (v *fakeView) RenderRooms(rooms json.RawMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rooms = append(v.rooms, rooms)
}

func (v *fakeView) RenderExpenses(expenses []rest.Expense) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.expenses = append(v.expenses, expenses)
}

func (v *fakeView) RenderBalances(balances []rest.Balance) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances = append(v.balances, balances)
}

func (v *fakeView) ClearExpenseForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.formCleared++
}

func (v *fakeView) lastProgress() progress {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.progress) == 0 {
		return progress{}
	}
	return v.progress[len(v.progress)-1]
}

func (v *fakeView) lastSyncConfirmed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.syncConfirmed) == 0 {
		return false
	}
	return v.syncConfirmed[len(v.syncConfirmed)-1]
}

func (v *fakeView) chatLines() []chatLine {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]chatLine(nil), v.chat...)
}

func (v *fakeView) countdownLabel() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.countdown
}

type fakeConn struct {
	mu   sync.Mutex
	sent []any
	err  error
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) frames() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

type fakeRepo struct {
	mu          sync.Mutex
	votes       []*rest.CastVoteParams
	addedExp    []*rest.AddExpenseParams
	candidates  json.RawMessage
	tally       json.RawMessage
	rooms       json.RawMessage
	expenses    []rest.Expense
	balances    []rest.Balance
	errVote     error
	errTally    error
	errExpense  error
	errExpenses error
	errBalances error
	calls       map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		candidates: json.RawMessage(`{"candidates":[]}`),
		tally:      json.RawMessage(`{"tally":[]}`),
		rooms:      json.RawMessage(`{"rooms":[]}`),
		calls:      make(map[string]int),
	}
}

func (r *fakeRepo) call(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[name]++
}

func (r *fakeRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *fakeRepo) GetCandidates(context.Context, string) (json.RawMessage, error) {
	r.call("candidates")
	return r.candidates, nil
}

func (r *fakeRepo) CastVote(_ context.Context, params *rest.CastVoteParams) error {
	r.call("vote")
	if r.errVote != nil {
		return r.errVote
	}
	r.mu.Lock()
	r.votes = append(r.votes, params)
	r.mu.Unlock()
	return nil
}

func (r *fakeRepo) GetTally(context.Context, string) (json.RawMessage, error) {
	r.call("tally")
	return r.tally, r.errTally
}

func (r *fakeRepo) AddExpense(_ context.Context, params *rest.AddExpenseParams) error {
	r.call("add_expense")
	if r.errExpense != nil {
		return r.errExpense
	}
	r.mu.Lock()
	r.addedExp = append(r.addedExp, params)
	r.mu.Unlock()
	return nil
}

func (r *fakeRepo) GetExpenses(context.Context, string) ([]rest.Expense, error) {
	r.call("expenses")
	return r.expenses, r.errExpenses
}

func (r *fakeRepo) GetBalances(context.Context, string) ([]rest.Balance, error) {
	r.call("balances")
	return r.balances, r.errBalances
}

func (r *fakeRepo) GetRooms(context.Context) (json.RawMessage, error) {
	r.call("rooms")
	return r.rooms, nil
}
