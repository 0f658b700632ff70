package model

import (
	"sync"
)

// Conn is the part of a websocket connection a viewer needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Viewer is one live connection observing a table.
type Viewer struct {
	ID       string
	PlayerID string

	mu   sync.Mutex
	conn Conn
}

func NewViewer(id, playerID string, conn Conn) *Viewer {
	return &Viewer{ID: id, PlayerID: playerID, conn: conn}
}

// Send serialises writes; websocket connections allow one writer at a time.
func (v *Viewer) Send(msg interface{}) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.WriteJSON(msg)
}

func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.Close()
}
