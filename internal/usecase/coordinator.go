package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
)

const maxCodeAttempts = 16

var ErrCodeSpaceExhausted = errors.New("failed to generate a free room code")

type notifier interface {
	Send(playerID string, event *entity.Event)
}

type statsRecorder interface {
	Record(counter string)
}

// Coordinator applies room and game actions. Every action runs under one lock, and
// the resulting events are handed to the notifier before the lock is released so each
// connection observes updates in the order they were applied.
type Coordinator struct {
	logger       *slog.Logger
	clock        clockwork.Clock
	generateCode func() string
	notifier     notifier
	stats        statsRecorder

	mu       sync.Mutex
	registry *repository.RoomRegistry
}

func NewCoordinator(
	logger *slog.Logger,
	registry *repository.RoomRegistry,
	notifier notifier,
	stats statsRecorder,
	clock clockwork.Clock,
	generateCode func() string,
) *Coordinator {
	return &Coordinator{
		logger:       logger.With("component", "coordinator"),
		clock:        clock,
		generateCode: generateCode,
		notifier:     notifier,
		stats:        stats,
		registry:     registry,
	}
}

// Connect registers a freshly connected player and greets it with its id.
func (that *Coordinator) Connect(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.registry.AddPlayer(entity.NewPlayer(playerID, that.clock.Now()))
	that.notifier.Send(playerID, entity.NewConnectedEvent(playerID))

	that.logger.Debug("player connected", "playerID", playerID)
}

// CreateRoom opens a room with the requester as X. An empty code asks for a generated one.
func (that *Coordinator) CreateRoom(playerID, code string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateRoom", "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.registry.GetPlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.InRoom() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, player.RoomID)
	}

	if code == "" {
		if code, err = that.freeCode(); err != nil {
			return nil, err
		}
	}

	room := entity.NewRoom(code, that.clock.Now())
	if err = that.registry.CreateRoom(room); err != nil {
		return nil, err
	}

	room.AddPlayer(playerID)
	player.Bind(code, entity.PlayerX)

	game := room.Snapshot()
	that.notifier.Send(playerID, entity.NewRoomCreatedEvent(game, playerID, entity.PlayerX))
	that.stats.Record(entity.StatRoomsCreated)

	log.Info("room created", "roomID", code)

	return game, nil
}

func (that *Coordinator) freeCode() (string, error) {
	for range maxCodeAttempts {
		if code := that.generateCode(); !that.registry.HasRoom(code) {
			return code, nil
		}
	}

	return "", ErrCodeSpaceExhausted
}

// JoinRoom seats the requester opposite the waiting player and starts the game.
func (that *Coordinator) JoinRoom(playerID, code string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinRoom", "playerID", playerID, "roomID", code)

	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.registry.GetPlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.InRoom() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, player.RoomID)
	}

	room, err := that.registry.GetRoom(code)
	if err != nil {
		return nil, err
	}

	// an abandoned room is waiting for the sweeper
	if room.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	if room.IsFull() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomFull, code)
	}

	symbol := that.freeSymbol(room)

	room.AddPlayer(playerID)
	room.Started = true
	player.Bind(code, symbol)

	game := room.Snapshot()
	that.broadcast(room, entity.NewPlayerJoinedEvent(game, playerID))
	that.stats.Record(entity.StatGamesStarted)

	log.Info("player joined room", "symbol", symbol)

	return game, nil
}

// freeSymbol returns the symbol not held by anyone seated in room.
func (that *Coordinator) freeSymbol(room *entity.Room) entity.Symbol {
	for _, id := range room.Players {
		if seated, err := that.registry.GetPlayer(id); err == nil && seated.Symbol.IsValid() {
			return seated.Symbol.Opponent()
		}
	}

	return entity.PlayerO
}

// MakeMove places the requester's symbol at index. Requests for a room the player is
// not seated in are rejected with apperror.ErrNotInRoom and never reported.
func (that *Coordinator) MakeMove(playerID, code string, index int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "playerID", playerID, "roomID", code)

	that.mu.Lock()
	defer that.mu.Unlock()

	player, room, err := that.seat(playerID, code)
	if err != nil {
		return nil, err
	}

	if !room.IsFinished() && !room.IsFull() {
		return nil, fmt.Errorf("%w: waiting for an opponent", apperror.ErrInvalidMove)
	}

	if err = room.MakeTurn(player.Symbol, index); err != nil {
		return nil, err
	}

	game := room.Snapshot()
	move := &entity.Move{Index: index, Symbol: player.Symbol, PlayerID: playerID}
	that.broadcast(room, entity.NewMoveMadeEvent(game, move))

	that.stats.Record(entity.StatMoves)
	if room.IsFinished() {
		that.stats.Record(entity.StatForOutcome(room.Winner))
		log.Info("game finished", "winner", room.Winner)
	}

	return game, nil
}

// ResetGame clears the board of the requester's room for a rematch.
func (that *Coordinator) ResetGame(playerID, code string) (*entity.Game, error) {
	log := that.logger.With("method", "ResetGame", "playerID", playerID, "roomID", code)

	that.mu.Lock()
	defer that.mu.Unlock()

	_, room, err := that.seat(playerID, code)
	if err != nil {
		return nil, err
	}

	room.Reset()

	game := room.Snapshot()
	that.broadcast(room, entity.NewGameResetEvent(game))
	if room.Started {
		that.stats.Record(entity.StatGamesStarted)
	}

	log.Info("game reset")

	return game, nil
}

// LeaveRoom unseats the requester. The remaining player, if any, is notified.
func (that *Coordinator) LeaveRoom(playerID, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, room, err := that.seat(playerID, code)
	if err != nil {
		return err
	}

	that.unseat(player, room)

	that.logger.Info("player left room", "method", "LeaveRoom", "playerID", playerID, "roomID", code)

	return nil
}

// Disconnect forgets the player and unseats it from its room.
func (that *Coordinator) Disconnect(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.registry.GetPlayer(playerID)
	if err != nil {
		return
	}

	if player.InRoom() {
		if room, err := that.registry.GetRoom(player.RoomID); err == nil {
			that.unseat(player, room)
		}
	}

	that.registry.DeletePlayer(playerID)

	that.logger.Debug("player disconnected", "playerID", playerID)
}

// seat resolves the room playerID is seated in, provided it is the room named code.
func (that *Coordinator) seat(playerID, code string) (*entity.Player, *entity.Room, error) {
	player, err := that.registry.GetPlayer(playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", apperror.ErrNotInRoom, err)
	}

	if player.RoomID != code {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrNotInRoom, code)
	}

	room, err := that.registry.GetRoom(code)
	if err != nil || !room.HasPlayer(playerID) {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrNotInRoom, code)
	}

	return player, room, nil
}

func (that *Coordinator) unseat(player *entity.Player, room *entity.Room) {
	room.RemovePlayer(player.ID, that.clock.Now())
	player.Unbind()

	if room.IsEmpty() {
		that.registry.DeleteRoom(room.ID)
		that.stats.Record(entity.StatRoomsRemoved)
		that.logger.Info("room removed", "roomID", room.ID)

		return
	}

	that.broadcast(room, entity.NewPlayerDisconnectedEvent(room.Snapshot(), player.ID))
}

func (that *Coordinator) broadcast(room *entity.Room, event *entity.Event) {
	for _, id := range room.Players {
		that.notifier.Send(id, event)
	}
}

// SweepEmptyRooms removes rooms that have had no players since before cutoff.
func (that *Coordinator) SweepEmptyRooms(cutoff time.Time) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for _, room := range that.registry.Rooms() {
		if !room.IsEmpty() {
			continue
		}

		since := room.EmptySince
		if since.IsZero() {
			since = room.CreatedAt
		}

		if since.After(cutoff) {
			continue
		}

		if that.registry.DeleteRoom(room.ID) {
			that.stats.Record(entity.StatRoomsRemoved)
			removed++
		}
	}

	return removed
}

// JoinableRooms lists rooms with a free seat, oldest first.
func (that *Coordinator) JoinableRooms() []entity.RoomSummary {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.joinableRooms()
}

func (that *Coordinator) joinableRooms() []entity.RoomSummary {
	rooms := make([]entity.RoomSummary, 0)
	for _, room := range that.registry.Rooms() {
		if !room.IsFull() {
			rooms = append(rooms, room.Summary())
		}
	}

	return rooms
}

func (that *Coordinator) RoomSummary(code string) (entity.RoomSummary, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.registry.GetRoom(code)
	if err != nil {
		return entity.RoomSummary{}, err
	}

	return room.Summary(), nil
}

type Counts struct {
	Rooms         int
	Players       int
	JoinableRooms int
}

func (that *Coordinator) Counts() Counts {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Counts{
		Rooms:         that.registry.RoomCount(),
		Players:       that.registry.PlayerCount(),
		JoinableRooms: len(that.joinableRooms()),
	}
}
