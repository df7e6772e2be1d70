package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sharetube/partyclient/internal/domain"
	"github.com/sharetube/partyclient/internal/repository/rest"
	"github.com/sharetube/partyclient/pkg/validator"
	"github.com/sharetube/partyclient/pkg/wsrouter"
)

const (
	tickInterval      = time.Second
	syncLabelDuration = 2 * time.Second
	eventsBufferSize  = 256
)

type iRepo interface {
	GetCandidates(ctx context.Context, roomID string) (json.RawMessage, error)
	CastVote(ctx context.Context, params *rest.CastVoteParams) error
	GetTally(ctx context.Context, roomID string) (json.RawMessage, error)
	AddExpense(ctx context.Context, params *rest.AddExpenseParams) error
	GetExpenses(ctx context.Context, roomID string) ([]rest.Expense, error)
	GetBalances(ctx context.Context, roomID string) ([]rest.Balance, error)
	GetRooms(ctx context.Context) (json.RawMessage, error)
}

type iConn interface {
	Send(v any) error
}

type Config struct {
	Session      Session
	Duration     int
	SendInterval time.Duration
	Countdown    int
	Clock        clockwork.Clock
	Logger       *slog.Logger
}

// Controller owns the state of one party session. All state is touched only
// from the goroutine running Run; exported methods queue work onto it.
type Controller struct {
	session   Session
	player    *domain.Player
	limiter   *domain.SendLimiter
	countdown *domain.Countdown
	activeTab domain.Tab

	repo     iRepo
	conn     iConn
	view     View
	clock    clockwork.Clock
	validate *validator.Validator
	wsmux    *wsrouter.WSRouter
	logger   *slog.Logger

	events chan func()
	done   chan struct{}
	post   func(func())
	spawn  func(func())
}

func NewController(repo iRepo, conn iConn, view View, cfg *Config) *Controller {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = domain.DefaultDuration
	}
	sendInterval := cfg.SendInterval
	if sendInterval <= 0 {
		sendInterval = domain.DefaultSendInterval
	}
	countdown := cfg.Countdown
	if countdown <= 0 {
		countdown = domain.DefaultCountdown
	}

	c := &Controller{
		session:   cfg.Session,
		player:    domain.NewPlayer(duration),
		limiter:   domain.NewSendLimiter(clock, sendInterval),
		countdown: domain.NewCountdown(countdown),
		activeTab: domain.TabChat,
		repo:      repo,
		conn:      conn,
		view:      view,
		clock:     clock,
		validate:  validator.NewValidator(),
		logger:    logger,
		events:    make(chan func(), eventsBufferSize),
		done:      make(chan struct{}),
	}
	c.post = c.enqueue
	c.spawn = func(fn func()) { go fn() }
	c.wsmux = c.initWSRouter()

	return c
}

func (c *Controller) Session() Session {
	return c.session
}

// Run processes queued work and the one second tick until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)

	ticker := c.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			c.tick()
		case fn := <-c.events:
			fn()
		}
	}
}

// Start renders the initial state and loads the vote and expense panels.
func (c *Controller) Start(ctx context.Context) {
	c.post(func() {
		c.view.SetActiveTab(c.activeTab)
		c.view.SetPlaying(c.player.IsPlaying)
		c.refreshProgress()
		c.view.SetCountdown(c.countdown.Label())
		c.loadCandidates(ctx)
		c.loadExpenses(ctx)
	})
}

func (c *Controller) enqueue(fn func()) {
	select {
	case c.events <- fn:
	case <-c.done:
	}
}

func (c *Controller) tick() {
	if c.player.Tick() {
		c.refreshProgress()
	}

	c.countdown.Tick()
	c.view.SetCountdown(c.countdown.Label())
}

// send drops v when the channel is down. Nothing is queued for later.
func (c *Controller) send(ctx context.Context, v any) {
	if err := c.conn.Send(v); err != nil {
		c.logger.DebugContext(ctx, "message dropped", "error", err)
	}
}
