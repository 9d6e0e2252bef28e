package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
)

type roomReader interface {
	JoinableRooms() []entity.RoomSummary
	RoomSummary(code string) (entity.RoomSummary, error)
	Counts() usecase.Counts
}

type statsReader interface {
	Stats(ctx context.Context) (map[string]int64, error)
}

type connectionCounter interface {
	Count() int
}

type Handlers struct {
	logger      *slog.Logger
	clock       clockwork.Clock
	rooms       roomReader
	stats       statsReader
	connections connectionCounter
}

func NewHandlers(
	logger *slog.Logger,
	clock clockwork.Clock,
	rooms roomReader,
	stats statsReader,
	connections connectionCounter,
) *Handlers {
	return &Handlers{
		logger:      logger.With("component", "rest"),
		clock:       clock,
		rooms:       rooms,
		stats:       stats,
		connections: connections,
	}
}

type bannerResponse struct {
	Message        string    `json:"message"`
	ConnectedUsers int       `json:"connectedUsers"`
	Timestamp      time.Time `json:"timestamp"`
}

type roomListItem struct {
	ID        string    `json:"id"`
	Players   int       `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}

type roomResponse struct {
	ID          string         `json:"id"`
	Players     int            `json:"players"`
	CreatedAt   time.Time      `json:"createdAt"`
	GameStarted bool           `json:"gameStarted"`
	Winner      entity.Outcome `json:"winner"`
}

type healthResponse struct {
	Status        string           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Rooms         int              `json:"rooms"`
	Players       int              `json:"players"`
	JoinableRooms int              `json:"joinableRooms"`
	Stats         map[string]int64 `json:"stats,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Root upgrades websocket handshakes with ws and answers plain requests with a banner.
func (that *Handlers) Root(ws http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			ws.ServeHTTP(w, r)
			return
		}

		that.writeJSON(w, http.StatusOK, bannerResponse{
			Message:        "Tic-tac-toe room server",
			ConnectedUsers: that.connections.Count(),
			Timestamp:      that.clock.Now().UTC(),
		})
	})
}

func (that *Handlers) ListRooms(w http.ResponseWriter, _ *http.Request) {
	summaries := that.rooms.JoinableRooms()

	rooms := make([]roomListItem, 0, len(summaries))
	for _, summary := range summaries {
		rooms = append(rooms, roomListItem{
			ID:        summary.ID,
			Players:   summary.Players,
			CreatedAt: summary.CreatedAt.UTC(),
		})
	}

	that.writeJSON(w, http.StatusOK, rooms)
}

func (that *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	summary, err := that.rooms.RoomSummary(r.PathValue("id"))
	if errors.Is(err, apperror.ErrRoomNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrRoomNotFound.Error()})
		return
	}

	if err != nil {
		that.logger.Error("failed to get room", "method", "GetRoom", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	that.writeJSON(w, http.StatusOK, roomResponse{
		ID:          summary.ID,
		Players:     summary.Players,
		CreatedAt:   summary.CreatedAt.UTC(),
		GameStarted: summary.GameStarted,
		Winner:      summary.Winner,
	})
}

func (that *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	counts := that.rooms.Counts()

	resp := healthResponse{
		Status:        statusOK,
		Timestamp:     that.clock.Now().UTC(),
		Rooms:         counts.Rooms,
		Players:       counts.Players,
		JoinableRooms: counts.JoinableRooms,
	}

	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		that.logger.Warn("failed to read stats", "method", "Health", "error", err)
		resp.Status = statusDegraded
	} else {
		resp.Stats = stats
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
