// Package partytest runs an in-process party backend for tests: the REST
// endpoints used by the client and the per-user room channel.
package partytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Frame is one message received from a client over the room channel.
type Frame struct {
	RoomID string
	UserID string
	Data   []byte
}

type Backend struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu        sync.Mutex
	requests  []Request
	responses map[string]string
	failures  map[string]int
	delays    map[string]time.Duration
	expenses  []map[string]any
	rejectWS  bool
	dials     int
	dialsCh   chan struct{}
	peers     chan *Peer
	frames    chan Frame
}

func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		responses: map[string]string{
			"/rooms":  `{"rooms":[]}`,
			"/health": `{"status":"ok"}`,
		},
		failures: make(map[string]int),
		delays:   make(map[string]time.Duration),
		dialsCh:  make(chan struct{}, 64),
		peers:    make(chan *Peer, 16),
		frames:   make(chan Frame, 64),
	}
	b.server = httptest.NewServer(b.mux())
	t.Cleanup(b.Close)

	return b
}

func (b *Backend) mux() http.Handler {
	r := chi.NewRouter()
	r.Use(b.recordMw)

	r.Get("/health", b.serveFixed)
	r.Get("/rooms", b.serveFixed)
	r.Route("/votes", func(r chi.Router) {
		r.Post("/", b.echoBody)
		r.Get("/{roomID}/candidates", b.serveFixed)
		r.Get("/{roomID}/tally", b.serveFixed)
	})
	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", b.addExpense)
		r.Get("/{roomID}", b.listExpenses)
		r.Get("/{roomID}/balances", b.serveFixed)
	})
	r.Get("/ws/{roomID}/{userID}", b.serveWS)

	return r
}

func (b *Backend) URL() string {
	return b.server.URL
}

// WSURL is the base URL of the room channel endpoint.
func (b *Backend) WSURL() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http")
}

func (b *Backend) Close() {
	b.server.CloseClientConnections()
	b.server.Close()
}

// SetResponse fixes the body returned for GET path.
func (b *Backend) SetResponse(path, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.responses[path] = body
}

// FailWith makes every request to path answer with status.
func (b *Backend) FailWith(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures[path] = status
}

// Delay holds every response to path for d.
func (b *Backend) Delay(path string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.delays[path] = d
}

// RejectWS makes the channel endpoint refuse upgrades.
func (b *Backend) RejectWS(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rejectWS = reject
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Request(nil), b.requests...)
}

// RequestsTo returns the recorded requests matching method and path.
func (b *Backend) RequestsTo(method, path string) []Request {
	var result []Request
	for _, req := range b.Requests() {
		if req.Method == method && req.Path == path {
			result = append(result, req)
		}
	}

	return result
}

func (b *Backend) Dials() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dials
}

// WaitDial blocks until the channel endpoint has been hit once more.
func (b *Backend) WaitDial(t testing.TB, timeout time.Duration) {
	t.Helper()

	select {
	case <-b.dialsCh:
	case <-time.After(timeout):
		t.Fatalf("no dial within %s", timeout)
	}
}

// AcceptPeer returns the server side of the next client connection.
func (b *Backend) AcceptPeer(t testing.TB, timeout time.Duration) *Peer {
	t.Helper()

	select {
	case p := <-b.peers:
		return p
	case <-time.After(timeout):
		t.Fatalf("no connection within %s", timeout)
		return nil
	}
}

// NextFrame returns the next frame any client sent.
func (b *Backend) NextFrame(t testing.TB, timeout time.Duration) Frame {
	t.Helper()

	select {
	case f := <-b.frames:
		return f
	case <-time.After(timeout):
		t.Fatalf("no frame within %s", timeout)
		return Frame{}
	}
}

// NoFrame fails the test if a frame arrives within wait.
func (b *Backend) NoFrame(t testing.TB, wait time.Duration) {
	t.Helper()

	select {
	case f := <-b.frames:
		t.Fatalf("unexpected frame: %s", f.Data)
	case <-time.After(wait):
	}
}

func (b *Backend) recordMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		b.mu.Lock()
		b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		status, failing := b.failures[r.URL.Path]
		delay := b.delays[r.URL.Path]
		b.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) serveFixed(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	body, ok := b.responses[r.URL.Path]
	b.mu.Unlock()

	if !ok {
		body = defaultBody(r.URL.Path)
	}

	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, body)
}

func defaultBody(path string) string {
	switch {
	case strings.HasSuffix(path, "/candidates"):
		return `{"candidates":[]}`
	case strings.HasSuffix(path, "/tally"):
		return `{"tally":[]}`
	case strings.HasSuffix(path, "/balances"):
		return `{"balances":[]}`
	default:
		return `{}`
	}
}

func (b *Backend) echoBody(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.Copy(w, r.Body)
}

func (b *Backend) addExpense(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	expense := map[string]any{
		"expense_id": body["expense_id"],
		"room_id":    body["room_id"],
		"user_id":    body["user_id"],
		"amount":     fmt.Sprint(body["amount"]),
		"note":       body["description"],
		"weight":     fmt.Sprint(body["weight"]),
	}

	b.mu.Lock()
	b.expenses = append(b.expenses, expense)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

func (b *Backend) listExpenses(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	b.mu.Lock()
	expenses := make([]map[string]any, 0, len(b.expenses))
	for _, e := range b.expenses {
		if e["room_id"] == roomID {
			expenses = append(expenses, e)
		}
	}
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"expenses": expenses})
}

func (b *Backend) serveWS(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.dials++
	reject := b.rejectWS
	b.mu.Unlock()

	select {
	case b.dialsCh <- struct{}{}:
	default:
	}

	if reject {
		http.Error(w, "channel unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	p := &Peer{
		RoomID: chi.URLParam(r, "roomID"),
		UserID: chi.URLParam(r, "userID"),
		conn:   conn,
	}
	b.peers <- p

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}

		b.frames <- Frame{RoomID: p.RoomID, UserID: p.UserID, Data: data}
	}
}
