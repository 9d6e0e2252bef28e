package websocket

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
)

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	conf   config.WebSocket
	logger *slog.Logger
}

func newClient(logger *slog.Logger, id string, conn *websocket.Conn, conf config.WebSocket) *client {
	return &client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, conf.SendBuffer),
		conf:   conf,
		logger: logger.With("playerID", id),
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
// It returns when the queue is closed or a write fails.
func (that *client) writePump() {
	ticker := time.NewTicker(that.conf.PingInterval)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteTimeout))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.conf.WriteTimeout))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				that.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// readPump passes every inbound text frame to handle until the connection fails.
func (that *client) readPump(handle func(data []byte)) {
	that.conn.SetReadLimit(that.conf.MaxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(that.conf.ReadTimeout))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(that.conf.ReadTimeout))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) &&
				!errors.Is(err, websocket.ErrReadLimit) {
				that.logger.Warn("unexpected close", "error", err)
			}
			return
		}

		handle(data)
		_ = that.conn.SetReadDeadline(time.Now().Add(that.conf.ReadTimeout))
	}
}
