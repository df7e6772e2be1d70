package partytest

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Peer is the server side of one client connection.
type Peer struct {
	RoomID string
	UserID string

	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *Peer) Send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.conn.WriteJSON(v)
}

func (p *Peer) SendRaw(data string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.conn.WriteMessage(websocket.TextMessage, []byte(data))
}

// Close ends the connection with a normal close frame.
func (p *Peer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)

	return p.conn.Close()
}
