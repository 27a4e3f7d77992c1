package ws

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServeEventsBroadcast(t *testing.T) {
	logger := zerolog.New(io.Discard)
	hub := NewHub(logger)
	srv := httptest.NewServer(ServeEvents(hub, logger))
	defer srv.Close()

	conn := dial(t, srv)
	hello := readMessage(t, conn)
	assert.Equal(t, TypeHello, hello.Type)
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	msg, err := NewMessage(TypeCorrect, map[string]int{"points": 250})
	require.NoError(t, err)
	require.NoError(t, hub.BroadcastAll(msg))

	got := readMessage(t, conn)
	assert.Equal(t, TypeCorrect, got.Type)
	assert.JSONEq(t, `{"points":250}`, string(got.Payload))
}

func TestServeEventsPingPong(t *testing.T) {
	logger := zerolog.New(io.Discard)
	hub := NewHub(logger)
	srv := httptest.NewServer(ServeEvents(hub, logger))
	defer srv.Close()

	conn := dial(t, srv)
	_ = readMessage(t, conn) // hello

	require.NoError(t, conn.WriteJSON(Message{Type: TypePing, RequestID: "r1"}))
	pong := readMessage(t, conn)
	assert.Equal(t, TypePong, pong.Type)
	assert.Equal(t, "r1", pong.RequestID)

	require.NoError(t, conn.WriteJSON(Message{Type: "submit_answer", RequestID: "r2"}))
	reply := readMessage(t, conn)
	assert.Equal(t, TypeError, reply.Type)
	assert.Equal(t, "r2", reply.RequestID)
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	logger := zerolog.New(io.Discard)
	hub := NewHub(logger)
	srv := httptest.NewServer(ServeEvents(hub, logger))
	defer srv.Close()

	conn := dial(t, srv)
	_ = readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestListenOnlyClientSurvivesPongWait(t *testing.T) {
	logger := zerolog.New(io.Discard)
	hub := NewHub(logger)
	hub.SetPongWait(300 * time.Millisecond)
	srv := httptest.NewServer(ServeEvents(hub, logger))
	defer srv.Close()

	conn := dial(t, srv)
	_ = readMessage(t, conn) // hello

	msg, err := NewMessage(TypeGameOver, map[string]int{"score": 730})
	require.NoError(t, err)
	go func() {
		time.Sleep(time.Second)
		_ = hub.BroadcastAll(msg)
	}()

	// the client never writes; server pings are answered while it reads
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var got Message
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeGameOver, got.Type)
	assert.Equal(t, 1, hub.Count())
}
