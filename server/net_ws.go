package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConn wraps a websocket with a buffered outbound queue so broadcasts
// from a tick never block on a slow reader.
type ClientConn struct {
	id string
	ws *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

var nextConnID atomic.Uint64

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		id:   fmt.Sprintf("conn-%d", nextConnID.Add(1)),
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

func (c *ClientConn) ID() string { return c.id }

// Send marshals an event envelope and enqueues it. A full queue drops the
// message instead of stalling the tick that produced it.
func (c *ClientConn) Send(event string, payload any) {
	b, err := EncodeEvent(event, payload)
	if err != nil {
		Log.Warnf("%s: encode %s: %v", c.id, event, err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		// drop, realtime state supersedes itself
	}
}

// Close shuts the queue and the socket; the write pump exits once the queue
// drains. Safe to call more than once.
func (c *ClientConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	_ = c.ws.Close()
}

// writePump runs on its own goroutine and drains the send queue onto the
// socket.
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump parses inbound envelopes and routes them to the matchmaker. When
// the read side dies the connection counts as disconnected.
func (c *ClientConn) readPump(mm *Matchmaker) {
	defer func() {
		mm.HandleDisconnect(c)
		c.Close()
	}()
	c.ws.SetReadLimit(1 << 20) // 1MB
	_ = c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			continue
		}
		switch env.Event {
		case EvFindGame:
			mm.FindGame(c)
		case EvPlayerInput:
			mm.HandleInput(c, parseInput(env.Data))
		case EvRequestReplay:
			mm.HandleReplay(c)
		default:
			// unknown events are ignored, not errors
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Demo posture: accept any origin. Lock this down in production.
		return true
	},
}

// HandleWS upgrades the connection and starts its pumps. Pairing happens
// later, when the client sends find-game.
func HandleWS(mm *Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			Log.Warnf("ws upgrade: %v", err)
			return
		}
		client := NewClientConn(ws)
		go client.writePump()
		go client.readPump(mm)
	}
}
