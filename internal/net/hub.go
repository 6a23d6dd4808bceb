// Package net shares a drawing surface between studios on a LAN. A host
// runs a Hub and clients connect to it with Dial. Committed shapes and
// clears are relayed over websockets.
package net

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"GraphicsStudio/internal/logging"
	"GraphicsStudio/internal/state"
)

const (
	sendQueue    = 64
	writeTimeout = 5 * time.Second
)

// peer is one connected client.
type peer struct {
	conn *websocket.Conn
	send chan Message
	addr string
}

// Hub is the host side of a shared board. It owns the authoritative
// surface, sends new clients a snapshot, applies what clients send and
// relays it to every other client.
type Hub struct {
	state.NopListener

	surface  *state.Surface
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*peer]struct{}
}

// NewHub returns a hub for surface and subscribes it to local changes.
func NewHub(surface *state.Surface) *Hub {
	h := &Hub{
		surface: surface,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
	surface.Subscribe(h)
	return h
}

// ShapeCommitted relays a shape drawn on the host.
func (h *Hub) ShapeCommitted(s state.Shape) {
	h.broadcast(Message{Type: TypeShape, Shape: &s}, nil)
}

// Cleared relays a clear made on the host.
func (h *Hub) Cleared(owner string) {
	h.broadcast(Message{Type: TypeClear, Owner: owner}, nil)
}

// Peers returns the number of connected clients.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return h.Serve(ctx, ln)
}

// Serve serves the hub on ln until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 10 * time.Second}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
		h.closePeers()
	}()
	logging.Logger().Info("sharing host listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &peer{conn: conn, send: make(chan Message, sendQueue), addr: conn.RemoteAddr().String()}

	// The snapshot is taken under the peer lock so no commit falls between
	// it and the first broadcast. Duplicates are dropped by Merge.
	h.mu.Lock()
	p.send <- Message{Type: TypeSnapshot, Shapes: h.surface.Shapes()}
	h.peers[p] = struct{}{}
	h.mu.Unlock()
	logging.Logger().Info("client connected", "remote", p.addr)

	go p.writeLoop()
	h.readLoop(p)
}

func (h *Hub) readLoop(p *peer) {
	defer h.remove(p)
	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			logging.Logger().Info("client disconnected", "remote", p.addr, "err", err)
			return
		}
		logging.Logger().Debug("received", "type", msg.Type, "remote", p.addr)
		switch msg.Type {
		case TypeShape, TypeClear:
			if !apply(h.surface, msg) {
				logging.Logger().Debug("not relaying rejected message", "type", msg.Type, "remote", p.addr)
				continue
			}
			h.broadcast(msg, p)
		default:
			logging.Logger().Warn("unexpected message", "type", msg.Type, "remote", p.addr)
		}
	}
}

func (p *peer) writeLoop() {
	defer p.conn.Close()
	for msg := range p.send {
		_ = p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := p.conn.WriteJSON(msg); err != nil {
			logging.Logger().Warn("send failed", "remote", p.addr, "err", err)
			return
		}
	}
	_ = p.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// broadcast queues msg for every peer except skip. A peer whose queue is
// full is dropped.
func (h *Hub) broadcast(msg Message, skip *peer) {
	h.mu.RLock()
	var slow []*peer
	for p := range h.peers {
		if p == skip {
			continue
		}
		select {
		case p.send <- msg:
		default:
			slow = append(slow, p)
		}
	}
	h.mu.RUnlock()
	for _, p := range slow {
		logging.Logger().Warn("dropping slow client", "remote", p.addr)
		h.remove(p)
	}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	h.mu.Unlock()
	if ok {
		close(p.send)
	}
}

func (h *Hub) closePeers() {
	h.mu.Lock()
	peers := h.peers
	h.peers = make(map[*peer]struct{})
	h.mu.Unlock()
	for p := range peers {
		close(p.send)
	}
}
