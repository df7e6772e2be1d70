package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultRetryDelay = 3 * time.Second

	writeWait = 10 * time.Second
)

var ErrNotConnected = errors.New("not connected")

type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

type Config struct {
	// URL is the full channel endpoint, see Endpoint.
	URL        string
	RetryDelay time.Duration
	Dialer     *websocket.Dialer
	Clock      clockwork.Clock
	// OnMessage receives every inbound frame on the read goroutine.
	OnMessage func(ctx context.Context, data []byte)
	// OnStateChange is called after every transition.
	OnStateChange func(State)
	Logger        *slog.Logger
}

// Manager keeps one channel connection open for a room member. Every close,
// including a failed dial, schedules exactly one reconnect after RetryDelay.
// The delay never grows and there is no retry limit.
type Manager struct {
	url           string
	retryDelay    time.Duration
	dialer        *websocket.Dialer
	clock         clockwork.Clock
	onMessage     func(context.Context, []byte)
	onStateChange func(State)
	logger        *slog.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	state State
}

func NewManager(cfg *Config) *Manager {
	m := &Manager{
		url:           cfg.URL,
		retryDelay:    cfg.RetryDelay,
		dialer:        cfg.Dialer,
		clock:         cfg.Clock,
		onMessage:     cfg.OnMessage,
		onStateChange: cfg.OnStateChange,
		logger:        cfg.Logger,
		state:         Disconnected,
	}

	if m.retryDelay <= 0 {
		m.retryDelay = DefaultRetryDelay
	}
	if m.dialer == nil {
		m.dialer = websocket.DefaultDialer
	}
	if m.clock == nil {
		m.clock = clockwork.NewRealClock()
	}
	if m.onMessage == nil {
		m.onMessage = func(context.Context, []byte) {}
	}
	if m.onStateChange == nil {
		m.onStateChange = func(State) {}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m
}

// Endpoint builds the channel URL of a room member from the channel base URL.
func Endpoint(baseURL, roomID, userID string) string {
	return fmt.Sprintf("%s/ws/%s/%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(roomID),
		url.PathEscape(userID),
	)
}

// Run connects and reconnects until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	for {
		m.connect(ctx)

		if ctx.Err() != nil {
			return nil
		}

		m.logger.InfoContext(ctx, "reconnect scheduled", "delay", m.retryDelay)
		select {
		case <-ctx.Done():
			return nil
		case <-m.clock.After(m.retryDelay):
		}
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Send writes v as one JSON frame. While disconnected the frame is not
// queued and ErrNotConnected is returned.
func (m *Manager) Send(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return ErrNotConnected
	}

	if err := m.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := m.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}

	return nil
}

func (m *Manager) connect(ctx context.Context) {
	conn, _, err := m.dialer.DialContext(ctx, m.url, nil)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to connect", "url", m.url, "error", err)
		return
	}

	m.setConn(conn)
	m.logger.InfoContext(ctx, "connected", "url", m.url)

	stop := context.AfterFunc(ctx, func() {
		m.mu.Lock()
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		m.mu.Unlock()
		conn.Close()
	})
	defer stop()

	m.readLoop(ctx, conn)
	conn.Close()

	m.setConn(nil)
	m.logger.InfoContext(ctx, "disconnected")
}

func (m *Manager) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				m.logger.WarnContext(ctx, "connection lost", "error", err)
			}
			return
		}

		m.onMessage(ctx, data)
	}
}

func (m *Manager) setConn(conn *websocket.Conn) {
	m.mu.Lock()
	m.conn = conn
	if conn != nil {
		m.state = Connected
	} else {
		m.state = Disconnected
	}
	state := m.state
	m.mu.Unlock()

	m.onStateChange(state)
}
