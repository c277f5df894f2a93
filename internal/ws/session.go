package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

// Session wraps one client's websocket connection. Writes are serialized by
// an internal mutex (the underlying conn allows only one concurrent writer).
type Session struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func NewSession(conn *websocket.Conn) *Session {
	return &Session{id: ulid.Make().String(), conn: conn}
}

func (s *Session) ID() string {
	return s.id
}

// Send marshals v and writes it as a single text frame. Sends to a closed
// session are silently dropped; the disconnect path reconciles registry
// state.
func (s *Session) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sendRaw(data)
}

func (s *Session) sendRaw(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.closed = true
		return err
	}
	return nil
}

// ReadMessage blocks for the next inbound frame.
func (s *Session) ReadMessage() ([]byte, error) {
	_, data, err := s.conn.ReadMessage()
	return data, err
}

func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	_ = s.conn.Close()
}
