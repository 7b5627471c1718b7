package realtime

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuthenticator struct {
	token string
	id    uuid.UUID
}

func (s *staticAuthenticator) Authenticate(token string) (uuid.UUID, error) {
	if token != s.token {
		return uuid.Nil, errors.New("bad token")
	}
	return s.id, nil
}

type inboundRequest struct {
	id        uuid.UUID
	frameType byte
	payload   []byte
}

func newTestHub(t *testing.T, playerID uuid.UUID) (*Hub, *httptest.Server, chan inboundRequest) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub("ws://advertised/api/v1/ws", log.New(io.Discard, "", 0))
	hub.SetClientAuthenticator(&staticAuthenticator{token: "good-token", id: playerID})

	requests := make(chan inboundRequest, 16)
	hub.SetClientRequestHandler(func(id uuid.UUID, frameType byte, payload []byte) {
		requests <- inboundRequest{id: id, frameType: frameType, payload: payload}
	})

	router := gin.New()
	hub.RegisterPublic(router.Group("/"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv, requests
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
}

func TestHubRejectsBadTokens(t *testing.T) {
	playerID := uuid.New()
	_, srv, _ := newTestHub(t, playerID)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "wrong"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubRoutesFramesBothWays(t *testing.T) {
	playerID := uuid.New()
	hub, srv, requests := newTestHub(t, playerID)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "good-token"), nil)
	require.NoError(t, err)
	defer conn.Close()

	// Inbound: a client action frame reaches the registered handler.
	frame, err := json.Marshal(Frame{Type: 1, Data: json.RawMessage(`{"toX":1.5}`)})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))

	select {
	case req := <-requests:
		assert.Equal(t, playerID, req.id)
		assert.Equal(t, byte(1), req.frameType)
		assert.JSONEq(t, `{"toX":1.5}`, string(req.payload))
	case <-time.After(2 * time.Second):
		t.Fatal("inbound frame never reached the handler")
	}

	// Outbound: a broadcast addressed to the player lands on the socket.
	hub.BroadcastToClients([]uuid.UUID{playerID}, 10, []byte(`{"version":3}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Frame
	require.NoError(t, json.Unmarshal(message, &got))
	assert.Equal(t, byte(10), got.Type)
	assert.JSONEq(t, `{"version":3}`, string(got.Data))
}

func TestHubSkipsUnconnectedPlayers(t *testing.T) {
	playerID := uuid.New()
	hub, _, _ := newTestHub(t, playerID)

	// Nobody is connected; must not panic or block.
	hub.BroadcastToClients([]uuid.UUID{playerID, uuid.New()}, 10, []byte(`{}`))
}

func TestHubMalformedFramesAreDropped(t *testing.T) {
	playerID := uuid.New()
	_, srv, requests := newTestHub(t, playerID)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "good-token"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	// The connection survives: a valid frame after the garbage still works.
	frame, err := json.Marshal(Frame{Type: 2, Data: json.RawMessage(`{}`)})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))

	select {
	case req := <-requests:
		assert.Equal(t, byte(2), req.frameType)
	case <-time.After(2 * time.Second):
		t.Fatal("valid frame after garbage never arrived")
	}
}
