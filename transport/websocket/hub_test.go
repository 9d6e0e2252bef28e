package websocket

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Send(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("Queues serialized events in order", func(t *testing.T) {
		c := &client{id: "p1", send: make(chan []byte, 2)}
		hub.register(c)
		defer hub.unregister(c)

		hub.Send("p1", entity.NewConnectedEvent("p1"))
		hub.Send("p1", entity.NewErrorEvent("Room not found"))

		assert.JSONEq(t, `{"type":"connected","playerId":"p1"}`, string(<-c.send))
		assert.JSONEq(t, `{"type":"error","message":"Room not found"}`, string(<-c.send))
	})

	t.Run("Full queue is skipped without blocking", func(t *testing.T) {
		c := &client{id: "p2", send: make(chan []byte, 1)}
		hub.register(c)
		defer hub.unregister(c)

		hub.Send("p2", entity.NewConnectedEvent("p2"))
		hub.Send("p2", entity.NewErrorEvent("dropped"))

		require.Len(t, c.send, 1)
		assert.JSONEq(t, `{"type":"connected","playerId":"p2"}`, string(<-c.send))
	})

	t.Run("Unknown players are ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			hub.Send("ghost", entity.NewConnectedEvent("ghost"))
		})
	})

	t.Run("Unregister closes the queue once", func(t *testing.T) {
		c := &client{id: "p3", send: make(chan []byte, 1)}
		hub.register(c)

		hub.unregister(c)
		hub.unregister(c)

		_, open := <-c.send
		assert.False(t, open)
		assert.Equal(t, 0, hub.Count())
	})
}

func TestParseMessage(t *testing.T) {
	msg, err := parseMessage([]byte(`{"type":"make_move","roomId":"ABC123","index":0}`))
	require.NoError(t, err)
	assert.Equal(t, TypeMakeMove, msg.Type)
	assert.Equal(t, "ABC123", msg.RoomID)
	require.NotNil(t, msg.Index)
	assert.Equal(t, 0, *msg.Index)

	for _, raw := range []string{`{`, `[]`, `{"roomId":"ABC123"}`, `{"type":"make_move","index":"four"}`} {
		_, err = parseMessage([]byte(raw))
		assert.Error(t, err, raw)
	}
}
