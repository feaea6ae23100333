package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"deskagent/internal/command"
	"deskagent/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	// type_text payloads can be long, so this is well above a single event
	maxMessage = 1 << 16
)

// wsHandler tracks connected UI shells
type wsHandler struct {
	server    *Server
	upgrader  websocket.Upgrader
	clients   map[*wsClient]struct{}
	clientsMu sync.Mutex
}

// wsClient is a single UI shell connection. Invokes are handled in the
// order they arrive.
type wsClient struct {
	handler *wsHandler
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	ip      string
}

func newWSHandler(s *Server) *wsHandler {
	return &wsHandler{
		server:  s,
		clients: make(map[*wsClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return len(o) == 0 || s.allowedOrigin(o)
			},
		},
	}
}

func (h *wsHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.server.log.Warning("WS: Failed to upgrade connection: %s", err)
		return
	}
	c := &wsClient{
		handler: h,
		conn:    conn,
		send:    make(chan []byte, 16),
		done:    make(chan struct{}),
		ip:      r.RemoteAddr,
	}

	h.clientsMu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.clientsMu.Unlock()
	h.server.log.Info("WS: Client connected from %s. Total clients: %d", c.ip, n)

	go c.writePump()
	go c.readPump()
}

func (h *wsHandler) remove(c *wsClient) {
	h.clientsMu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.clientsMu.Unlock()
	h.server.log.Info("WS: Client disconnected from %s. Total clients: %d", c.ip, n)
}

// Clients returns the number of connected UI shells
func (s *Server) Clients() int {
	s.ws.clientsMu.Lock()
	defer s.ws.clientsMu.Unlock()
	return len(s.ws.clients)
}

// readPump reads invokes and answers each before reading the next one.
func (c *wsClient) readPump() {
	defer func() {
		c.handler.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.handler.server.log.Warning("WS: Read error from %s: %s", c.ip, err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if r := c.handleMessage(data); r != nil {
			b, err := json.Marshal(r)
			if err != nil {
				c.handler.server.log.Error("WS: Failed to marshal result: %s", err)
				continue
			}
			if !c.deliver(b) {
				return
			}
		}
	}
}

// deliver queues b for writing. It reports false once the writer is gone.
func (c *wsClient) deliver(b []byte) bool {
	select {
	case c.send <- b:
		return true
	case <-c.done:
		return false
	}
}

// writePump writes results and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsClient) handleMessage(data []byte) *protocol.Message {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.handler.server.log.Warning("WS: Invalid message format from %s: %s", c.ip, err)
		return &protocol.Message{
			Type:  protocol.TypeResult,
			Error: &protocol.ErrorBody{Kind: command.InvalidArgument.String(), Message: err.Error()},
		}
	}

	switch msg.Type {
	case protocol.TypePing:
		return &protocol.Message{Type: protocol.TypePong, ID: msg.ID}
	case protocol.TypeInvoke:
		res, err := c.handler.server.invoke(msg.Command, msg.Args)
		r := &protocol.Message{Type: protocol.TypeResult, ID: msg.ID, Result: res}
		if err != nil {
			r.Result = nil
			r.Error = &protocol.ErrorBody{Kind: command.KindOf(err).String(), Message: err.Error()}
		}
		return r
	}
	c.handler.server.log.Debug("WS: Ignoring message type %q from %s", msg.Type, c.ip)
	return nil
}
