// Package realtime is the websocket gateway between game rounds and their
// players: one authenticated connection per player, JSON frames both ways.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

const sendQueueSize = 64

// Hub upgrades connections, tracks clients by player ID, and fans
// broadcast frames out to them.
type Hub struct {
	addr          string
	upgrader      websocket.Upgrader
	logger        *log.Logger
	authenticator i.PlayerAuthenticator
	onRequest     func(uuid.UUID, byte, []byte)

	clients map[uuid.UUID]*client
	sync.RWMutex
}

var _ i.ClientGateway = &Hub{}

// NewHub creates a gateway advertising the given websocket address.
func NewHub(addr string, logger *log.Logger) *Hub {
	return &Hub{
		addr:    addr,
		logger:  logger,
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Game clients connect from their own origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SetClientRequestHandler implements i.ClientGateway.
func (h *Hub) SetClientRequestHandler(f func(uuid.UUID, byte, []byte)) {
	h.onRequest = f
}

// SetClientAuthenticator implements i.ClientGateway.
func (h *Hub) SetClientAuthenticator(a i.PlayerAuthenticator) {
	h.authenticator = a
}

// Addr implements i.ClientGateway.
func (h *Hub) Addr() string { return h.addr }

// RegisterPublic mounts the upgrade endpoint. The handshake carries its
// own token, so the route sits outside the HTTP auth middleware.
func (h *Hub) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ws", h.handleUpgrade)
}

// RegisterProtected registers nothing; the socket authenticates itself.
func (h *Hub) RegisterProtected(route *gin.RouterGroup) {}

// handleUpgrade authenticates the token query parameter and promotes the
// request to a websocket connection.
func (h *Hub) handleUpgrade(ctx *gin.Context) {
	if h.authenticator == nil {
		ctx.Status(http.StatusServiceUnavailable)
		return
	}

	id, err := h.authenticator.Authenticate(ctx.Query("token"))
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logf("upgrading connection for %s: %v", id, err)
		return
	}

	c := &client{id: id, conn: conn, send: make(chan []byte, sendQueueSize), hub: h}
	h.add(c)
	go c.writePump()
	go c.readPump()
}

// BroadcastToClients implements i.ClientGateway. Slow consumers are
// dropped rather than allowed to stall a round's broadcast.
func (h *Hub) BroadcastToClients(ids []uuid.UUID, frameType byte, payload []byte) {
	frame, err := json.Marshal(Frame{Type: frameType, Data: payload})
	if err != nil {
		h.logf("marshaling broadcast frame: %v", err)
		return
	}

	h.RLock()
	defer h.RUnlock()
	for _, id := range ids {
		c, ok := h.clients[id]
		if !ok {
			continue
		}
		select {
		case c.send <- frame:
		default:
			h.logf("dropping frame for slow client %s", id)
		}
	}
}

func (h *Hub) add(c *client) {
	h.Lock()
	defer h.Unlock()
	if old, ok := h.clients[c.id]; ok {
		close(old.send)
	}
	h.clients[c.id] = c
}

func (h *Hub) remove(c *client) {
	h.Lock()
	defer h.Unlock()
	if current, ok := h.clients[c.id]; ok && current == c {
		close(c.send)
		delete(h.clients, c.id)
	}
}

func (h *Hub) dispatch(id uuid.UUID, frameType byte, payload []byte) {
	if h.onRequest != nil {
		h.onRequest(id, frameType, payload)
	}
}

func (h *Hub) logf(format string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
