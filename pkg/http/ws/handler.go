package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Upgrader handles WebSocket upgrades for the local presentation layer.
var Upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeEvents upgrades the request and streams hub broadcasts to the client until it
// disconnects. Clients may send ping messages and get a pong back.
func ServeEvents(hub *Hub, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		conn := hub.newConnection(raw, logger)
		id := hub.Register(conn)
		go conn.WritePump()

		if hello, err := NewMessage(TypeHello, HelloPayload{ConnectionID: id.String(), ServerTime: time.Now().UTC()}); err == nil {
			_ = conn.Send(hello)
		}

		conn.ReadPump(func(msg Message) error {
			if msg.Type != TypePing {
				reply, err := NewMessage(TypeError, ErrorPayload{Code: "unknown_message_type", Message: "only ping is accepted"})
				if err != nil {
					return err
				}
				reply.RequestID = msg.RequestID
				return conn.Send(reply)
			}
			return conn.Send(Message{Type: TypePong, RequestID: msg.RequestID, Payload: []byte("{}")})
		})
		hub.Unregister(id)
	}
}
