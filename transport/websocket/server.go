package websocket

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
)

type coordinator interface {
	Connect(playerID string)
	Disconnect(playerID string)

	CreateRoom(playerID, code string) (*entity.Game, error)
	JoinRoom(playerID, code string) (*entity.Game, error)
	MakeMove(playerID, code string, index int) (*entity.Game, error)
	ResetGame(playerID, code string) (*entity.Game, error)
	LeaveRoom(playerID, code string) error
}

type handlerFunc func(playerID string, msg *Message) error

type Server struct {
	logger      *slog.Logger
	conf        config.WebSocket
	upgrader    websocket.Upgrader
	hub         *Hub
	coordinator coordinator

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, conf config.WebSocket, hub *Hub, coordinator coordinator) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		conf:   conf,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		hub:         hub,
		coordinator: coordinator,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[TypeCreateRoom] = server.handleCreateRoom
	server.handlers[TypeJoinRoom] = server.handleJoinRoom
	server.handlers[TypeMakeMove] = server.handleMakeMove
	server.handlers[TypeResetGame] = server.handleResetGame
	server.handlers[TypeLeaveRoom] = server.handleLeaveRoom

	return server
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, pkg.GeneratePlayerID(), conn, that.conf)

	that.hub.register(c)
	that.coordinator.Connect(c.id)

	log.Info("player connected", "playerID", c.id, "remote", r.RemoteAddr)

	go c.writePump()

	c.readPump(func(data []byte) {
		that.dispatch(c.id, data)
	})

	that.coordinator.Disconnect(c.id)
	that.hub.unregister(c)

	log.Info("player disconnected", "playerID", c.id)
}

// dispatch routes one inbound frame. Rejections the client may see are answered with an
// error event to the sender only; anything else is logged and dropped.
func (that *Server) dispatch(playerID string, data []byte) {
	log := that.logger.With("method", "dispatch", "playerID", playerID)

	msg, err := parseMessage(data)
	if err != nil {
		log.Warn("dropping message", "error", err, "size", len(data))
		return
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		log.Warn("dropping message", "error", apperror.ErrUnknownMessageType, "type", msg.Type)
		return
	}

	err = handler(playerID, msg)
	if err == nil {
		return
	}

	if text, surfaced := apperror.ClientMessage(err); surfaced {
		log.Info("action rejected", "type", msg.Type, "roomID", msg.RoomID, "reason", err)
		that.hub.Send(playerID, entity.NewErrorEvent(text))

		return
	}

	if errors.Is(err, apperror.ErrMalformedMessage) || errors.Is(err, apperror.ErrNotInRoom) {
		log.Debug("action ignored", "type", msg.Type, "roomID", msg.RoomID, "reason", err)
		return
	}

	log.Error("failed to handle message", "type", msg.Type, "error", err)
}
